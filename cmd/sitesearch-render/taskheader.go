package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"sitesearch/internal/core/events"
	"sitesearch/internal/platform/net/http/bind"
	"sitesearch/internal/ui/taskheader"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
)

type headerFlags struct {
	markup, payload string
	htmlID          string
	site, pageBase  string
	sender          string
	timeout         time.Duration
}

func newTaskHeaderCmd() *cobra.Command {
	var f headerFlags
	cmd := &cobra.Command{
		Use:   "task-header",
		Short: "Apply a task notification to header markup and print the result",
		Long: `Binds a task details header to the element with --id in the --markup document,
publishes the --payload notification on the task detailed data channel and prints the
updated element. Use "-" to read either file from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTaskHeader(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.markup, "markup", "", "html file holding the header")
	fl.StringVar(&f.payload, "payload", "", "task notification json file")
	fl.StringVar(&f.htmlID, "id", "", "id of the header root element")
	fl.StringVar(&f.site, "site", "", "site the details link is scoped to")
	fl.StringVar(&f.pageBase, "page-base", taskheader.DefaultPageBase, "page context root for links")
	fl.StringVar(&f.sender, "sender", "sitesearch-render", "sender recorded on the notification")
	fl.DurationVar(&f.timeout, "timeout", 5*time.Second, "time allowed for delivery")
	_ = cmd.MarkFlagRequired("markup")
	_ = cmd.MarkFlagRequired("payload")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(path)
}

func runTaskHeader(cmd *cobra.Command, f headerFlags) error {
	if f.markup == "-" && f.payload == "-" {
		return fmt.Errorf("only one of --markup and --payload can read stdin")
	}
	mr, err := openInput(cmd, f.markup)
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(mr)
	_ = mr.Close()
	if err != nil {
		return fmt.Errorf("parse markup: %w", err)
	}

	pr, err := openInput(cmd, f.payload)
	if err != nil {
		return err
	}
	task, err := bind.DecodeJSON[taskheader.TaskNotification](pr, bind.JSONOptions{MaxBytes: 1 << 20})
	_ = pr.Close()
	if err != nil {
		return fmt.Errorf("payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), f.timeout)
	defer cancel()

	loop := events.NewLoop()
	go func() { _ = loop.Run(ctx) }()
	ch := events.NewChannel[taskheader.Envelope](loop, events.TaskDetailedData)

	hdr, err := taskheader.New(doc, f.htmlID, ch, taskheader.WithSite(f.site), taskheader.WithPageBase(f.pageBase))
	if err != nil {
		return err
	}
	defer hdr.Close()

	ch.Publish(taskheader.Envelope{Sender: f.sender, Task: task})
	if err := loop.Sync(ctx); err != nil {
		return fmt.Errorf("deliver notification: %w", err)
	}

	out, err := hdr.HTML()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

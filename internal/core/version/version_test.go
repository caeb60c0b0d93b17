package version

import (
	"runtime"
	"strings"
	"testing"

	kit "sitesearch/internal/platform/testkit"
)

func TestInfo(t *testing.T) {
	kit.Swap(t, &Service, "sitesearch-render")
	kit.Swap(t, &version, "v1.2.3")

	bi := Info()
	if bi.Service != "sitesearch-render" || bi.Version != "v1.2.3" {
		t.Fatalf("unexpected info: %+v", bi)
	}
	if bi.GoVersion != runtime.Version() {
		t.Fatalf("go version = %q", bi.GoVersion)
	}
	if bi.Commit == "" || bi.Date == "" {
		t.Fatalf("commit and date must never be empty: %+v", bi)
	}
	if s := bi.String(); !strings.HasPrefix(s, "sitesearch-render v1.2.3 (commit ") {
		t.Fatalf("String() = %q", s)
	}
}

package catalog

// builtin carries the labels for the default sort definitions
var builtin = map[string]map[string]string{
	"en": {
		"search.sort.relevance":   "Relevance",
		"search.sort.name":        "Name",
		"search.sort.title":       "Title",
		"search.sort.description": "Description",
		"search.sort.created":     "Created date",
		"search.sort.creator":     "Creator",
		"search.sort.modified":    "Modified date",
		"search.sort.modifier":    "Modifier",
		"search.sort.type":        "Type",
	},
	"fr": {
		"search.sort.relevance":   "Pertinence",
		"search.sort.name":        "Nom",
		"search.sort.title":       "Titre",
		"search.sort.description": "Description",
		"search.sort.created":     "Date de création",
		"search.sort.creator":     "Créateur",
		"search.sort.modified":    "Date de modification",
		"search.sort.modifier":    "Modificateur",
		"search.sort.type":        "Type",
	},
}

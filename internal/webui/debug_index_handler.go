package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

type debugData struct {
	Title     string
	DataTypes []string
	Pre       string
}

var dataTypes = []string{"stats", "stops", "patterns"}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	dataStruct := debugData{
		Title:     title,
		DataTypes: dataTypes,
		Pre:       spew.Sdump(data),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := debugTemplate.Execute(w, dataStruct); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "stats":
		data = webUI.Model.Stats()
		title = "Transit Model - Statistics"
	case "stops":
		data = webUI.Model.Stops()
		title = "Transit Model - Stops"
	case "patterns":
		data = webUI.Model.Patterns()
		title = "Transit Model - Route Patterns"
	default:
		data = map[string]string{
			"error": "Please use one of the following: stats, stops, patterns.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}

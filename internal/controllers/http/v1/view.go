package http

import (
	"html/template"
	"io"

	"oil-forecast/internal/models"
)

type pageView struct {
	Steps  string
	Result *models.ForecastResult
	Chart  *chartSnippet
	Error  string
}

// chartSnippet is a go-echarts chart inlined into the page.
type chartSnippet struct {
	Assets  []string
	Element template.HTML
	Script  template.HTML
}

// newChartSnippet renders the chart of an already computed result, so the page
// shows exactly the series it lists.
func newChartSnippet(result *models.ForecastResult) *chartSnippet {
	line := lineForecast(result)
	snippet := line.RenderSnippet()

	return &chartSnippet{
		Assets:  line.JSAssets.Values,
		Element: template.HTML(snippet.Element),
		Script:  template.HTML(snippet.Script),
	}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Oil Price Forecasting</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; background-color: #f5f5f5; }
        .page { max-width: 1000px; margin: 0 auto; background: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        h1 { color: #333; text-align: center; }
        .form-group { margin: 20px 0; }
        label { display: block; margin-bottom: 5px; font-weight: bold; }
        input[type="number"] { width: 100px; padding: 8px; border: 1px solid #ddd; border-radius: 4px; }
        button { background: #007bff; color: white; padding: 10px 20px; border: none; border-radius: 4px; cursor: pointer; }
        button:hover { background: #0056b3; }
        .result { margin-top: 30px; padding: 20px; background: #f8f9fa; border-radius: 5px; }
        .forecast-item { margin: 5px 0; padding: 5px; background: white; border-radius: 3px; }
        .error { color: red; background: #ffe6e6; padding: 10px; border-radius: 4px; }
        .data-section { display: flex; gap: 20px; }
        .chart-section { flex: 2; }
        .values-section { flex: 1; }
        .values-list { max-height: 300px; overflow-y: auto; }
    </style>
</head>
<body>
    <div class="page">
        <h1>Oil Price Forecasting</h1>

        <form method="GET" action="/">
            <div class="form-group">
                <label for="steps">Number of Forecast Steps:</label>
                <input type="number" id="steps" name="steps" value="{{.Steps}}" min="1" max="100" required>
                <button type="submit">Get Forecast</button>
            </div>
        </form>
{{with .Result}}
        <div class="result">
            <h3>Forecast Results ({{.Steps}} steps)</h3>
            <p><strong>Min Value:</strong> {{printf "%.2f" .MinValue}}</p>
            <p><strong>Max Value:</strong> {{printf "%.2f" .MaxValue}}</p>
            <p><strong>Mean Value:</strong> {{printf "%.2f" .MeanValue}}</p>

            <div class="data-section">
                <div class="chart-section">
                    <h4>Forecast Chart:</h4>
{{- with $.Chart}}
                    {{.Element}}
{{- end}}
                </div>

                <div class="values-section">
                    <h4>Forecast Values:</h4>
                    <div class="values-list">
{{- range .Points}}
                        <div class="forecast-item"><strong>{{.Label}}:</strong> {{printf "%.2f" .Value}}</div>
{{- end}}
                    </div>
                </div>
            </div>
        </div>
{{end}}
{{- if .Error}}
        <div class="error">
            <strong>Error:</strong> {{.Error}}
        </div>
{{end}}
    </div>
    <footer style="text-align:center; margin-top:40px; color:#888; font-size:16px;">
        <hr style="margin:30px 0;">
        <p>View the project on <a href="https://github.com/msarvesh2022/Oil-Price" target="_blank" style="color:#007bff; text-decoration:underline;">GitHub</a></p>
    </footer>
{{- with .Chart}}
{{- range .Assets}}
    <script src="{{.}}"></script>
{{- end}}
    {{.Script}}
{{- end}}
</body>
</html>
`))

func renderPage(w io.Writer, view pageView) error {
	return pageTemplate.Execute(w, view)
}

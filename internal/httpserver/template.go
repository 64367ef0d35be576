package httpserver

const indexTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Meeting Minutes</title>
  <style>
    body { font-family: sans-serif; margin: 2em; max-width: 60em; }
    label { display: block; margin-top: .75em; }
    .error { color: #b00020; }
    .chunks { font-family: monospace; white-space: pre-wrap; }
    hr { border: none; border-top: 1px solid #ccc; margin: 1em 0; }
  </style>
</head>
<body>
  <h1>Meeting Minutes</h1>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  <form method="post" action="/" enctype="multipart/form-data">
    <label>Recording (.wav, .m4a, .mp4) <input type="file" name="audio_file" accept=".wav,.m4a,.mp4" required></label>
    <label>Date <input type="date" name="date" value="{{.Date}}"></label>
    <label>Attendees <input type="text" name="attendees" value="{{.Attendees}}"></label>
    <label>Topic <input type="text" name="topic" value="{{.Topic}}"></label>
    <p><button type="submit">Generate minutes</button></p>
  </form>
  {{if .Transcript}}
  <hr>
  <h2>Transcript</h2>
  <p>{{.Transcript}}</p>
  {{end}}
  {{if .Chunks}}
  <h3>Chunks</h3>
  <div class="chunks">{{range .Chunks}}{{.}}
{{end}}</div>
  {{if .Halted}}<p class="error">Transcription stopped early: {{.Halted}}</p>{{end}}
  {{end}}
  {{if .SummaryHTML}}
  <hr>
  <h2>Minutes</h2>
  <div class="summary">{{.SummaryHTML}}</div>
  <form method="post" action="/download">
    <input type="hidden" name="summary_html" value="{{.Summary}}">
    <button type="submit">Download PDF</button>
  </form>
  {{end}}
</body>
</html>
`

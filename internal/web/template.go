package web

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Company Industry Classifier</title>
<style>
body { font-family: sans-serif; max-width: 40rem; margin: 2rem auto; }
label { display: block; margin-top: 1rem; font-weight: bold; }
input, textarea, select { width: 100%; padding: 0.4rem; }
.result { margin-top: 1.5rem; padding: 1rem; background: #eef6ee; }
.error { margin-top: 1.5rem; padding: 1rem; background: #fbeaea; }
</style>
</head>
<body>
<h1>Company Industry Classifier</h1>
<form method="post" action="/classify">
  <label for="name">Company name</label>
  <input id="name" name="name" value="{{.Name}}">
  <label for="description">Description</label>
  <textarea id="description" name="description" rows="6">{{.Description}}</textarea>
  <label for="method">Method</label>
  <select id="method" name="method">
  {{- range .Methods}}
    <option value="{{.}}"{{if eq . $.Method}} selected{{end}}>{{.}}</option>
  {{- end}}
  </select>
  <p><button type="submit">Classify</button></p>
</form>
{{- with .Error}}
<div class="error">{{.}}</div>
{{- end}}
{{- with .Result}}
<div class="result">
  <p><strong>Industry:</strong> <span id="industry">{{.Industry}}</span></p>
  <p><strong>Confidence:</strong> {{percent .Confidence}}</p>
  {{- if .MatchedTerms}}
  <p><strong>Matched terms:</strong> {{join .MatchedTerms ", "}}</p>
  {{- end}}
</div>
{{- end}}
</body>
</html>
`

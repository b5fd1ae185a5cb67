package dashboard

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Chemical Equipment Parameter Visualizer</title>
<style>
  body { margin: 0; font-family: system-ui, -apple-system, "Segoe UI", sans-serif; background: #0f172a; color: #e2e8f0; }
  .topbar { padding: 20px 32px; background: #111c35; border-bottom: 1px solid #1e293b; }
  .topbar h1 { margin: 0; font-size: 22px; }
  .topbar span { color: #94a3b8; font-size: 13px; }
  .upload-section { display: flex; justify-content: center; padding: 28px; }
  .upload-box { display: block; padding: 24px 48px; border: 2px dashed #4dabf7; border-radius: 12px; text-align: center; cursor: pointer; }
  .upload-box input { display: none; }
  .status { text-align: center; }
  .status.error { color: #ff6b6b; }
  .metrics { display: grid; grid-template-columns: repeat(4, 1fr); gap: 16px; padding: 0 32px; }
  .metric-card { background: #111c35; border-radius: 12px; padding: 18px; text-align: center; }
  .metric-card h2 { margin: 0 0 6px; font-size: 26px; }
  .metric-card p { margin: 0; color: #94a3b8; }
  .charts { display: grid; grid-template-columns: 1fr 1fr; gap: 16px; padding: 24px 32px; }
  .chart-card { background: #111c35; border-radius: 12px; padding: 18px; }
  .chart-card h3 { margin-top: 0; }
  footer { text-align: center; padding: 24px; color: #64748b; font-size: 12px; }
</style>
</head>
<body>
<div class="app">
  <header class="topbar">
    <h1>Chemical Equipment Parameter Visualizer</h1>
    <span>Hybrid Web + Desktop Analytics Platform</span>
  </header>
  <div id="dashboard" data-session="{{.Session}}">{{template "dashboard" .}}</div>
  <footer>© 2025 | Designed by Sameer Jagtap</footer>
</div>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.2/dist/chart.umd.min.js"></script>
<script src="/static/dashboard.js"></script>
</body>
</html>
{{define "dashboard"}}
  <section class="upload-section">
    <label class="upload-box">
      <input type="file" accept=".csv" name="file" data-upload>
      <p>📁 Upload CSV Dataset</p>
      {{if .FileName}}<small class="file-name">{{.FileName}}</small>{{end}}
    </label>
  </section>
  {{if .Loading}}<p class="status loading">Processing CSV…</p>{{end}}
  {{if .Error}}<p class="status error">{{.Error}}</p>{{end}}
  {{if .HasSummary}}
  <section class="metrics">
    {{range .Metrics}}
    <div class="metric-card">
      <h2>{{.Display}}</h2>
      <p>{{.Title}}</p>
    </div>
    {{end}}
  </section>
  <section class="charts">
    <div class="chart-card">
      <h3>Average Parameter Analysis</h3>
      <canvas id="barChart" data-chart-type="bar" data-chart="{{.BarJSON}}"></canvas>
    </div>
    <div class="chart-card">
      <h3>Equipment Type Distribution</h3>
      <canvas id="doughnutChart" data-chart-type="doughnut" data-chart="{{.DoughnutJSON}}"></canvas>
    </div>
  </section>
  {{end}}
{{end}}`

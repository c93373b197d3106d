package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/sweeney/thermostat/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"temp": func(v float64, valid bool) string {
		if !valid {
			return "FAULT"
		}
		return fmt.Sprintf("%.1f °F", v)
	},
	"hum": func(v float64, valid bool) string {
		if !valid {
			return "FAULT"
		}
		return fmt.Sprintf("%.1f %%", v)
	},
	"pct": func(f float64) string {
		return fmt.Sprintf("%.0f%%", f*100)
	},
	"onoff": func(b bool) string {
		if b {
			return "ON"
		}
		return "OFF"
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="5">
<title>Thermostat</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.fault { color: red; font-weight: bold; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Thermostat</h1>

{{if eq .Mode "PROVISIONING"}}
<p>This thermostat has no network identity yet. Submit one below; the
device restarts immediately afterwards.</p>
<form method="POST" action="/setup">
<table>
<tr><th>Network name</th><td><input name="name" maxlength="32"></td></tr>
<tr><th>Secret</th><td><input name="secret" type="password" maxlength="64"></td></tr>
<tr><th></th><td><button type="submit">Save</button></td></tr>
</table>
</form>
{{else}}

<h2>Climate</h2>
<table>
<tr><th>Temperature</th><td class="{{if not .TempValid}}fault{{end}}">{{temp .Temp .TempValid}}</td></tr>
<tr><th>Humidity</th><td class="{{if not .HumValid}}fault{{end}}">{{hum .Hum .HumValid}}</td></tr>
<tr><th>Target</th><td>{{printf "%.0f" .Target}} °F</td></tr>
<tr><th>Heater</th><td class="{{if .HeaterOn}}on{{else}}off{{end}}">{{onoff .HeaterOn}}</td></tr>
<tr><th>Armed</th><td>{{onoff .Armed}}</td></tr>
<tr><th>Freeze guard</th><td>{{onoff .FreezeGuard}}</td></tr>
</table>

<h2>Display</h2>
<table>
<tr><th>Sleeping</th><td>{{if .DisplaySleeping}}yes{{else}}no{{end}}</td></tr>
<tr><th>Brightness</th><td>{{pct .Brightness}}</td></tr>
</table>
{{end}}

<h2>Daemon</h2>
<table>
<tr><th>Mode</th><td>{{.Mode}}</td></tr>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
</table>

<p><a href="/index.json">json</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	if err := indexTmpl.Execute(w, snap); err != nil {
		log.Printf("render status page: %v", err)
	}
}

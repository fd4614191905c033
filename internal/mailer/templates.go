package mailer

import (
	"bytes"
	"html/template"
)

var dailyTmpl = template.Must(template.New("daily").Parse(`<html>
  <body>
    <p>Hi {{.Name}},</p>
    <p>This is a quick reminder to write in your diary today.</p>
    <p><a href="{{.AppURL}}">Create a new entry</a></p>
    <p>&copy; Diario</p>
  </body>
</html>`))

var weeklyTmpl = template.Must(template.New("weekly").Parse(`<html>
  <body>
    <p>Hi {{.Name}},</p>
    {{if eq .Count 0}}<p>You did not write any entries this week. There is always time to start.</p>
    {{else if eq .Count 1}}<p>You wrote 1 entry this week.</p>
    {{else}}<p>You wrote {{.Count}} entries this week.</p>{{end}}
    <p><a href="{{.AppURL}}">Open your diary</a></p>
    <p>&copy; Diario</p>
  </body>
</html>`))

// DailyReminder builds the daily writing prompt.
func DailyReminder(to, name, appURL string) (Message, error) {
	var b bytes.Buffer
	if err := dailyTmpl.Execute(&b, map[string]any{"Name": name, "AppURL": appURL}); err != nil {
		return Message{}, err
	}
	return Message{To: to, ToName: name, Subject: "How was your day today?", HTML: b.String()}, nil
}

// WeeklySummary builds the weekly summary with the number of entries written in the past week.
func WeeklySummary(to, name string, count int, appURL string) (Message, error) {
	var b bytes.Buffer
	if err := weeklyTmpl.Execute(&b, map[string]any{"Name": name, "Count": count, "AppURL": appURL}); err != nil {
		return Message{}, err
	}
	return Message{To: to, ToName: name, Subject: "Your week in your diary", HTML: b.String()}, nil
}

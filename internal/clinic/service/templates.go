package service

import (
	"bytes"
	"html/template"
)

const (
	subjectWelcome      = "Bienvenido a NeuroHealth"
	subjectConfirmation = "NeuroHealth - Confirmación de cita"
	subjectReminder     = "NeuroHealth - Recordatorio de cita"
)

var mailTemplates = template.Must(template.New("mail").Parse(`
{{define "welcome"}}<h1>Hola {{.Nombre}}!</h1><p>Tu cuenta ha sido creada con éxito.</p>{{end}}

{{define "appointment"}}<div style="background-color: #f8f9fa; padding: 15px; border-left: 4px solid #3498db; margin: 10px 0;">` +
	`<p><strong>Fecha:</strong> {{.Fecha}}</p>` +
	`<p><strong>Hora:</strong> {{.Hora}}</p>` +
	`<p><strong>Especialista:</strong> {{.Especialista}}</p>` +
	`</div>{{end}}

{{define "signature"}}<br><p>Saludos,</p><p><strong>Equipo NeuroHealth</strong></p>{{end}}

{{define "confirmation"}}<html><body style="font-family: Arial, sans-serif;">` +
	`<h2 style="color: #2c3e50;">Hola {{.Nombre}},</h2>` +
	`<p>Has agendado una cita con éxito. Aquí están los detalles:</p>` +
	`{{template "appointment" .}}` +
	`<p>Recibirás un recordatorio el día de tu cita.</p>` +
	`<p>Si necesitas cancelar o reprogramar, por favor contáctanos con anticipación.</p>` +
	`{{template "signature"}}</body></html>{{end}}

{{define "reminder"}}<html><body style="font-family: Arial, sans-serif;">` +
	`<h2 style="color: #2c3e50;">Hola {{.Nombre}},</h2>` +
	`<p>Te recordamos que tienes una cita próximamente:</p>` +
	`{{template "appointment" .}}` +
	`{{template "signature"}}</body></html>{{end}}
`))

type appointmentMail struct {
	Nombre       string
	Fecha        string
	Hora         string
	Especialista string
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

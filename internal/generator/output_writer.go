package generator

import (
	"html"
	"io"
)

type OutputWriter interface {
	WriteDoctype()
	WriteTagStart(name string)
	WriteAttribute(name, value string)
	WriteTagStartEnd()
	WriteTagEnd(name string)
	WriteText(text string)

	// Err returns the first error returned by the underlying writer
	Err() error
}

type outputWriter struct {
	w      io.Writer
	escape bool

	err error
}

func (w *outputWriter) Err() error {
	return w.err
}

func (w *outputWriter) write(str string) {
	if w.err != nil {
		return
	}

	_, w.err = io.WriteString(w.w, str)
}

func (w *outputWriter) writeMaybeEscaped(str string) {
	if w.escape {
		str = html.EscapeString(str)
	}

	w.write(str)
}

func (w *outputWriter) WriteDoctype() {
	w.write("<!DOCTYPE html>")
}

func (w *outputWriter) WriteTagStart(name string) {
	w.write("<")
	w.write(name)
}

func (w *outputWriter) WriteAttribute(name, value string) {
	w.write(" ")
	w.write(name)
	w.write(`="`)
	w.writeMaybeEscaped(value)
	w.write(`"`)
}

func (w *outputWriter) WriteTagStartEnd() {
	w.write(">")
}

func (w *outputWriter) WriteTagEnd(name string) {
	w.write("</")
	w.write(name)
	w.write(">")
}

func (w *outputWriter) WriteText(text string) {
	w.writeMaybeEscaped(text)
}

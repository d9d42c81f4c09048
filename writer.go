package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

type FormattingWriter interface {
	Printf(format string, a ...interface{}) (n int, err error)
	PrintfIndent(indent int, format string, a ...interface{}) (n int, err error)
}

type FormattingWriterImpl struct {
	b bytes.Buffer
}

func (w *FormattingWriterImpl) Printf(format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(&w.b, format, a...)
}

const indentPattern = "  "

func (w *FormattingWriterImpl) PrintfIndent(indent int, format string, a ...interface{}) (n int, err error) {
	indentString := strings.Repeat(indentPattern, indent)
	return fmt.Fprintf(&w.b, indentString+format, a...)
}

func (w *FormattingWriterImpl) String() string {
	return w.b.String()
}

func (w *FormattingWriterImpl) WriteToFile(name string) (int, error) {
	f, err := os.Create(name)
	if err != nil {
		return 0, err
	}
	n, err := f.Write(w.b.Bytes())
	if err != nil {
		f.Close()
		return n, err
	}
	return n, f.Close()
}

// printReport writes the golden wast script for one report.
func printReport(writer FormattingWriter, r *Report, variant string) {
	writer.Printf(";; Go package '%s' [%s] variant %s\n", r.Source.Package, r.Source.FileName, variant)
	for _, res := range r.Results {
		writer.PrintfIndent(1, "%s\n", res.Golden())
	}
	writer.Printf(";; passed %d, failed %d, skipped %d\n", r.Passed, r.Failed, r.Skipped)
	writer.Printf("\n")
}

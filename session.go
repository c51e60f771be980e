package main

import (
	"encoding/json"
	"os"

	"github.com/mgmeyers/pdfannotator/editor"
	"github.com/mgmeyers/pdfannotator/pdfutils"
	"github.com/pkg/errors"
)

// Session is the saved state of one editing session: the page being edited,
// how it was displayed and the annotations on it.
type Session struct {
	Page int `json:"page"`
	pdfutils.PageGeometry
	editor.Snapshot
}

func ReadSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, err
	}

	sess := Session{}
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, errors.Wrapf(err, "parse session %s", path)
	}

	if sess.Page < 0 {
		return Session{}, errors.Errorf("session %s: negative page %d", path, sess.Page)
	}

	return sess, nil
}

func WriteSession(path string, sess Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func (s Session) ExportRequest() pdfutils.ExportRequest {
	return pdfutils.ExportRequest{
		PageIndex:  s.Page,
		Geometry:   s.PageGeometry,
		Texts:      s.Texts,
		Signatures: s.Signatures,
	}
}

package pdfutils

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pkg/errors"
)

func init() {
	// keep pdfcpu from creating a config dir under the user's home
	model.ConfigPath = "disable"
}

func PageCount(doc []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	n, err := api.PageCount(bytes.NewReader(doc), conf)
	if err != nil {
		return 0, errors.Wrap(err, "count pages")
	}

	return n, nil
}

// VerifyPageCount checks that an exported document kept every page of its
// source.
func VerifyPageCount(src, out []byte) error {
	want, err := PageCount(src)
	if err != nil {
		return err
	}

	got, err := PageCount(out)
	if err != nil {
		return err
	}

	if got != want {
		return errors.Errorf("exported document has %d pages, source has %d", got, want)
	}

	return nil
}

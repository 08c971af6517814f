package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/docker/go-units"
	"github.com/fatih/color"

	"github.com/GriffinCanCode/liview/internal/domain/archive"
	"github.com/GriffinCanCode/liview/internal/domain/gallery"
)

// printer renders results as colored text or JSON.
type printer struct {
	w      io.Writer
	asJSON bool

	dir     *color.Color
	extract *color.Color
	faint   *color.Color
	ok      *color.Color
}

func newPrinter(w io.Writer, asJSON bool) *printer {
	return &printer{
		w:       w,
		asJSON:  asJSON,
		dir:     color.New(color.FgBlue, color.Bold),
		extract: color.New(color.FgMagenta),
		faint:   color.New(color.Faint),
		ok:      color.New(color.FgGreen),
	}
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) paths(list []string) error {
	if p.asJSON {
		return p.json(list)
	}
	for _, s := range list {
		fmt.Fprintln(p.w, s)
	}
	return nil
}

func (p *printer) folders(list []gallery.Folder) error {
	if p.asJSON {
		return p.json(list)
	}
	for _, f := range list {
		if f.Extracted {
			p.extract.Fprintf(p.w, "%s/", f.Name)
			p.faint.Fprintf(p.w, "  (extracted) %s\n", f.Path)
			continue
		}
		p.dir.Fprintf(p.w, "%s/\n", f.Name)
	}
	return nil
}

func (p *printer) extracted(res *archive.Result) error {
	if p.asJSON {
		return p.json(res)
	}
	p.ok.Fprint(p.w, "extracted ")
	fmt.Fprintf(p.w, "%s -> %s\n", res.Archive, res.Dir)
	p.faint.Fprintf(p.w, "%d files, %d dirs, %d skipped, %s\n",
		res.Files, res.Dirs, res.Skipped, units.HumanSize(float64(res.Bytes)))
	return nil
}

func (p *printer) entries(list []archive.Entry) error {
	if p.asJSON {
		return p.json(list)
	}
	for _, e := range list {
		if e.IsDir {
			p.dir.Fprintln(p.w, e.Name)
			continue
		}
		fmt.Fprintf(p.w, "%10s  %s\n", units.HumanSize(float64(e.Size)), e.Name)
	}
	return nil
}

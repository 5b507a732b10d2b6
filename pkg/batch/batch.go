// Package batch converts a directory of PNG images into headerless RGBA
// pixel files, one "<name>.bytes" per "<name>.png".
package batch

import (
	"context"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"pngbytes/pkg/bitmap"
)

const (
	SourceExt = ".png"
	OutputExt = ".bytes"
)

// Default directories, relative to the working directory.
const (
	DefaultSource      = "./assets/optical_objects_pngs/"
	DefaultDestination = "./assets/optical_objects_bytes/"
)

const osWriteFlags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC

// New opens the source and destination directories. Neither is created;
// both must already exist.
func New(srcDir, dstDir string, logger *zap.Logger, opts ...Option) (*Converter, error) {
	src, err := newFs(srcDir)
	if err != nil {
		return nil, fmt.Errorf("open source failed: %w", err)
	}

	dst, err := newFs(dstDir)
	if err != nil {
		return nil, fmt.Errorf("open destination failed: %w", err)
	}

	return NewWithFs(src, dst, logger, opts...), nil
}

func NewWithFs(src, dst afero.Fs, logger *zap.Logger, opts ...Option) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Converter{
		src: src,
		dst: dst,
		log: logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type Converter struct {
	src afero.Fs
	dst afero.Fs
	log *zap.Logger
	// options
	keepGoing bool
	atomic    bool
	progress  io.Writer
	manifest  string
}

// List returns the names of the PNG files in the source directory, sorted.
// Only regular files are kept; symlinks count when they resolve to one.
// Two entries that would write the same output fail the listing.
func (c *Converter) List() ([]string, error) {
	infos, err := afero.ReadDir(c.src, root)
	if err != nil {
		return nil, newError(ErrIO, root, err)
	}

	pngs := lo.Filter(infos, func(fi os.FileInfo, _ int) bool {
		log := c.log.With(zap.String("entry", fi.Name()))
		if !strings.EqualFold(filepath.Ext(fi.Name()), SourceExt) {
			log.Debug("skipped")
			return false
		}

		st, err := c.src.Stat(path.Join(root, fi.Name()))
		if err != nil {
			log.With(zap.Error(err)).Debug("skipped")
			return false
		}
		if !st.Mode().IsRegular() {
			log.With(zap.String("mode", st.Mode().String())).Debug("skipped")
			return false
		}
		return true
	})

	names := lo.Map(pngs, func(fi os.FileInfo, _ int) string {
		return fi.Name()
	})

	seen := make(map[string]string, len(names))
	for _, name := range names {
		output := outputName(name)
		if prev, ok := seen[output]; ok {
			return nil, newError(ErrIO, name, errors.Errorf("%s and %s both write %s", prev, name, output))
		}
		seen[output] = name
	}

	return names, nil
}

func baseName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func outputName(name string) string {
	return baseName(name) + OutputExt
}

// Run converts every listed image in order. By default the first failure
// stops the batch; outputs written before it are kept. The returned report
// covers the files converted so far, even when err is not nil.
func (c *Converter) Run(ctx context.Context) (*Report, error) {
	names, err := c.List()
	if err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if c.progress != nil {
		bar = progressbar.NewOptions(len(names),
			progressbar.OptionSetWriter(c.progress),
			progressbar.OptionSetDescription("converting"),
			progressbar.OptionShowCount(),
		)
	}

	report := &Report{}
	var errs error

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			errs = multierr.Append(errs, err)
			break
		}

		rec, err := c.ConvertFile(name)
		if bar != nil {
			_ = bar.Add(1)
		}

		if err != nil {
			errs = multierr.Append(errs, err)
			if !c.keepGoing {
				break
			}
			c.log.With(zap.Error(err)).Warn("convert failed, continuing")
			continue
		}

		report.Records = append(report.Records, rec)
	}

	if bar != nil {
		_ = bar.Finish()
	}

	if c.manifest != "" {
		errs = multierr.Append(errs, c.writeManifest(report))
	}

	log := c.log.With(
		zap.Int("files", len(report.Records)),
		zap.String("total", bytesize.New(float64(report.Total())).String()),
	)
	if errs != nil {
		log.With(zap.Error(errs)).Error("batch failed")
	} else {
		log.Info("batch done")
	}

	return report, errs
}

// ConvertFile converts a single source entry and writes its output,
// replacing any existing file of the same name.
func (c *Converter) ConvertFile(name string) (Record, error) {
	base := baseName(name)
	rec := Record{Name: base, Source: name, Output: outputName(name)}

	c.log.With(zap.String("name", base)).Info(fmt.Sprintf("converting %s to bytes", base))

	img, err := c.decode(name)
	if err != nil {
		return rec, err
	}

	bs := bitmap.Encode(img)
	if err := c.write(rec.Output, bs); err != nil {
		return rec, newError(ErrIO, rec.Output, err)
	}

	rec.Width = img.Bounds().Dx()
	rec.Height = img.Bounds().Dy()
	rec.Size = len(bs)

	c.log.With(
		zap.String("output", rec.Output),
		zap.Int("w", rec.Width),
		zap.Int("h", rec.Height),
		zap.Int("size", rec.Size),
	).Debug("converted")

	return rec, nil
}

func (c *Converter) decode(name string) (image.Image, error) {
	f, err := c.src.Open(path.Join(root, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(ErrNotFound, name, err)
		}
		return nil, newError(ErrIO, name, err)
	}
	defer func() {
		_ = f.Close()
	}()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, newError(ErrDecode, name, err)
	}

	return img, nil
}

func (c *Converter) write(name string, bs []byte) error {
	file := path.Join(root, name)
	if !c.atomic {
		return writeFile(c.dst, file, bs)
	}

	tmp := path.Join(root, "."+xid.New().String()+".tmp")
	if err := writeFile(c.dst, tmp, bs); err != nil {
		_ = c.dst.Remove(tmp)
		return err
	}

	if err := c.dst.Rename(tmp, file); err != nil {
		_ = c.dst.Remove(tmp)
		return err
	}

	return nil
}

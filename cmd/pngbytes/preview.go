package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"pngbytes/pkg/batch"
	"pngbytes/pkg/bitmap"
)

type previewOptions struct {
	width    int
	height   int
	manifest string
	out      string
}

func newPreviewCmd() *cobra.Command {
	var opts previewOptions

	cmd := &cobra.Command{
		Use:   "preview <file.bytes>",
		Short: "Rebuild a PNG from a raw .bytes file",
		Long: `Preview wraps a raw RGBA file in a PNG so it can be viewed. The raw file
carries no dimensions: pass --width and --height, or --manifest pointing at
the manifest written by convert.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := preview(afero.NewOsFs(), args[0], opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 0, "image width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "image height in pixels")
	cmd.Flags().StringVar(&opts.manifest, "manifest", "", "manifest to read the dimensions from")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output png (default: input name with .png)")

	return cmd
}

func preview(fs afero.Fs, file string, opts previewOptions) (string, error) {
	if opts.manifest != "" && (opts.width == 0 || opts.height == 0) {
		rec, err := lookupManifest(fs, opts.manifest, filepath.Base(file))
		if err != nil {
			return "", err
		}
		if rec.Width < 0 || rec.Height < 0 {
			return "", errors.Errorf("invalid dimensions %dx%d in manifest %s", rec.Width, rec.Height, opts.manifest)
		}
		opts.width, opts.height = rec.Width, rec.Height
	} else if opts.width <= 0 || opts.height <= 0 {
		return "", errors.New("width and height are required")
	}

	bs, err := afero.ReadFile(fs, file)
	if err != nil {
		return "", err
	}

	img, err := bitmap.FromBytes(bs, opts.width, opts.height)
	if err != nil {
		return "", errors.Wrap(err, file)
	}

	out := opts.out
	if out == "" {
		out = strings.TrimSuffix(file, filepath.Ext(file)) + ".png"
	}

	f, err := fs.Create(out)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()

	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		_ = f.Close()
		_ = fs.Remove(out)
		return "", errors.Wrap(err, "encode png failed")
	}

	return out, f.Close()
}

func lookupManifest(fs afero.Fs, name, file string) (batch.Record, error) {
	f, err := fs.Open(name)
	if err != nil {
		return batch.Record{}, err
	}
	defer func() {
		_ = f.Close()
	}()

	m, err := batch.LoadManifest(f)
	if err != nil {
		return batch.Record{}, errors.Wrapf(err, "load manifest %s failed", name)
	}

	rec, ok := m.Lookup(file)
	if !ok {
		return batch.Record{}, errors.Errorf("%s not listed in manifest %s", file, name)
	}

	return rec, nil
}

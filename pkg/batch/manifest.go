package batch

import (
	"io"
	"path"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"
)

// PixelFormat names the layout of every output file.
const PixelFormat = "rgba8"

// Manifest lists the dimensions of the raw files in a destination
// directory, which the files themselves do not carry.
type Manifest struct {
	Format string   `yaml:"format"`
	Files  []Record `yaml:"files"`
}

func LoadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Lookup finds a record by base name or by output file name.
func (m *Manifest) Lookup(name string) (Record, bool) {
	return lo.Find(m.Files, func(r Record) bool {
		return r.Name == name || r.Output == name
	})
}

func (c *Converter) writeManifest(r *Report) error {
	bs, err := yaml.Marshal(&Manifest{Format: PixelFormat, Files: r.Records})
	if err != nil {
		return newError(ErrIO, c.manifest, err)
	}

	if err := writeFile(c.dst, path.Join(root, c.manifest), bs); err != nil {
		return newError(ErrIO, c.manifest, err)
	}

	c.log.With(zap.String("manifest", c.manifest), zap.Int("files", len(r.Records))).Debug("manifest saved")
	return nil
}

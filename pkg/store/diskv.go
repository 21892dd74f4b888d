package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/postcard/pkg/model"
)

// TemplateKey holds the live template.
const TemplateKey = "card.template.v2"

const libraryPrefix = "library"

var (
	// ErrNotFound is returned when a key holds nothing.
	ErrNotFound = errors.New("store: not found")
	// ErrNameRequired is returned for blank library names.
	ErrNameRequired = errors.New("store: template name required")
)

// Named describes a library entry. Err is set when the entry's payload could
// not be read or its meta decoded.
type Named struct {
	Name string     `json:"name"`
	Meta model.Meta `json:"meta"`
	Err  error      `json:"-"`
}

// Persistence stores the live template and a library of named templates as
// exported JSON payloads.
type Persistence interface {
	LoadTemplate() ([]byte, error)
	SaveTemplate(data []byte) error
	Clear() error

	SaveNamed(name string, data []byte) error
	LoadNamed(name string) ([]byte, error)
	ListNamed(ctx context.Context) []Named
	DeleteNamed(name string) error
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		fc, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = fc
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           filepath.Join(basePath, ".tmp"),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      4 * 1024 * 1024, // 4MB, two max-size templates
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) ([]byte, error) {
	if !p.d.Has(key) {
		return nil, ErrNotFound
	}
	val, err := p.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (p *persistence) LoadTemplate() ([]byte, error) {
	return p.read(TemplateKey)
}

func (p *persistence) SaveTemplate(data []byte) error {
	if err := p.d.Write(TemplateKey, data); err != nil {
		return fmt.Errorf("store: write template: %w", err)
	}
	return nil
}

func (p *persistence) Clear() error {
	if !p.d.Has(TemplateKey) {
		return nil
	}
	return p.d.Erase(TemplateKey)
}

func (p *persistence) SaveNamed(name string, data []byte) error {
	key, err := toLibraryKey(name)
	if err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %q: %w", name, err)
	}
	return nil
}

func (p *persistence) LoadNamed(name string) ([]byte, error) {
	key, err := toLibraryKey(name)
	if err != nil {
		return nil, err
	}
	return p.read(key)
}

func (p *persistence) DeleteNamed(name string) error {
	key, err := toLibraryKey(name)
	if err != nil {
		return err
	}
	if !p.d.Has(key) {
		return ErrNotFound
	}
	return p.d.Erase(key)
}

// ListNamed returns the library sorted by name. Entries whose payload cannot
// be read still appear, without meta and with Err set.
func (p *persistence) ListNamed(ctx context.Context) []Named {
	list := make([]Named, 0)
	for key := range p.d.KeysPrefix(libraryPrefix+"-", ctx.Done()) {
		name, ok := fromLibraryKey(key)
		if !ok {
			continue
		}
		n := Named{Name: name}
		val, err := p.d.Read(key)
		if err != nil {
			n.Err = fmt.Errorf("store: read %q: %w", name, err)
		} else {
			var head struct {
				Meta model.Meta `json:"meta"`
			}
			if err := json.Unmarshal(val, &head); err != nil {
				n.Err = fmt.Errorf("store: decode %q: %w", name, err)
			} else {
				n.Meta = head.Meta
			}
		}
		list = append(list, n)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toLibraryKey makes `library-<hex name>`; hex keeps names with separators
// and path characters out of the file layout.
func toLibraryKey(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return fmt.Sprintf("%s-%s", libraryPrefix, hex.EncodeToString([]byte(name))), nil
}

func fromLibraryKey(key string) (string, bool) {
	encoded, ok := strings.CutPrefix(key, libraryPrefix+"-")
	if !ok {
		return "", false
	}
	name, err := hex.DecodeString(encoded)
	if err != nil {
		return "", false
	}
	return string(name), true
}

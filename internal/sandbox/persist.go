package sandbox

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/tui-sand/internal/config"
	"github.com/vovakirdan/tui-sand/internal/sim"
)

// Save writes the live grid into a store slot.
func (s *Session) Save(slot string) error {
	if s.store == nil {
		s.status = "Save failed: " + describe(ErrNoStore)
		return ErrNoStore
	}
	info, err := s.store.SaveScene(slot, s.presetID, s.arena.Current())
	if err != nil {
		s.log.Warn("save failed", "slot", slot, "err", err)
		s.status = "Save failed: " + describe(err)
		return err
	}
	s.log.Info("scene saved", "slot", slot, "id", info.ID, "particles", info.Particles)
	s.status = fmt.Sprintf("Saved to %q", slot)
	return nil
}

// Load replaces the live grid with a store slot. On any error the grid is
// left unchanged.
func (s *Session) Load(slot string) error {
	if s.store == nil {
		s.status = "Load failed: " + describe(ErrNoStore)
		return ErrNoStore
	}
	g, err := s.store.LoadScene(slot, s.Width(), s.Height())
	if err != nil {
		s.log.Warn("load failed", "slot", slot, "err", err)
		s.status = "Load failed: " + describe(err)
		return err
	}
	if err := s.replace(g); err != nil {
		s.status = "Load failed: " + describe(err)
		return err
	}
	s.log.Info("scene loaded", "slot", slot, "particles", s.particles)
	s.status = fmt.Sprintf("Loaded %q", slot)
	return nil
}

// ExportJSON writes the live grid as a scene payload into the export
// directory and returns the file path.
func (s *Session) ExportJSON() (string, error) {
	data, err := sim.Encode(s.arena.Current())
	if err != nil {
		s.status = "Export failed: " + describe(err)
		return "", err
	}
	return s.writeExport("json", data)
}

// ExportPNG writes the live grid as a PNG image into the export directory
// and returns the file path.
func (s *Session) ExportPNG() (string, error) {
	data, err := EncodePNG(s.arena.Current(), ImageScale)
	if err != nil {
		s.status = "Image export failed: " + describe(err)
		return "", err
	}
	return s.writeExport("png", data)
}

func (s *Session) writeExport(ext string, data []byte) (string, error) {
	dir := config.ExpandPath(s.exportDir)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.status = "Export failed: " + describe(err)
		return "", fmt.Errorf("sandbox: create export dir: %w", err)
	}

	name := fmt.Sprintf("sand_%s.%s", s.now().Format("20060102_150405"), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		s.log.Warn("export failed", "path", path, "err", err)
		s.status = "Export failed: " + describe(err)
		return "", fmt.Errorf("sandbox: write export: %w", err)
	}

	s.log.Info("scene exported", "path", path)
	s.status = "Exported " + name
	return path, nil
}

// ImportJSON replaces the live grid with a scene payload file. On any
// error the grid is left unchanged.
func (s *Session) ImportJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		s.status = "Import failed: " + describe(err)
		return fmt.Errorf("sandbox: read import: %w", err)
	}
	g, err := sim.Hydrate(data, s.Width(), s.Height())
	if err != nil {
		s.status = "Import failed: " + describe(err)
		return err
	}
	if err := s.replace(g); err != nil {
		s.status = "Import failed: " + describe(err)
		return err
	}
	s.log.Info("scene imported", "path", path, "particles", s.particles)
	s.status = "Imported " + filepath.Base(path)
	return nil
}

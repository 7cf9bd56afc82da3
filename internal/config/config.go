// Package config carries the parameter bundle for one sync run. It is built
// by the CLI and handed to the sync engine explicitly, never read as ambient
// state, so tests can inject temporary directories.
package config

import (
	"errors"
	"fmt"

	"github.com/n64tools/savesync/internal/savefmt"
	"github.com/n64tools/savesync/internal/utils"
)

type Config struct {
	RomDir    string `json:"rom_dir" mapstructure:"rom_dir"`
	SrcFormat string `json:"src_format" mapstructure:"src_format"`
	SrcDir    string `json:"src_dir" mapstructure:"src_dir"`
	DstFormat string `json:"dst_format" mapstructure:"dst_format"`
	DstDir    string `json:"dst_dir" mapstructure:"dst_dir"`

	// Recursive scans the ROM directory tree instead of just its top level.
	Recursive bool `json:"recursive" mapstructure:"recursive"`
	// Backup snapshots a destination file into <dst>/backup before it is
	// overwritten.
	Backup bool `json:"backup" mapstructure:"backup"`
	// OnlyIfNewer copies over an existing destination only when the source
	// is strictly newer.
	OnlyIfNewer bool `json:"only_if_newer" mapstructure:"only_if_newer"`
}

// Validate normalizes the directories to absolute paths and checks the
// formats and the src/dst pairing. Directory existence is left to the sync
// engine, which reports it as a fatal enumeration error.
func (c *Config) Validate() error {
	if c.RomDir == "" || c.SrcDir == "" || c.DstDir == "" {
		return errors.New("rom-dir, src-dir and dst-dir are required")
	}

	var err error
	if c.RomDir, err = utils.ResolvePath(c.RomDir); err != nil {
		return fmt.Errorf("rom-dir: %w", err)
	}
	if c.SrcDir, err = utils.ResolvePath(c.SrcDir); err != nil {
		return fmt.Errorf("src-dir: %w", err)
	}
	if c.DstDir, err = utils.ResolvePath(c.DstDir); err != nil {
		return fmt.Errorf("dst-dir: %w", err)
	}

	if _, err := savefmt.ParseFormat(c.SrcFormat); err != nil {
		return fmt.Errorf("src-format: %w", err)
	}
	if _, err := savefmt.ParseFormat(c.DstFormat); err != nil {
		return fmt.Errorf("dst-format: %w", err)
	}

	if c.SrcDir == c.DstDir {
		return fmt.Errorf("src-dir and dst-dir are the same directory: %s", c.SrcDir)
	}

	return nil
}

// SrcSaveFormat returns the parsed source format. Validate must have passed.
func (c *Config) SrcSaveFormat() savefmt.SaveFormat {
	f, err := savefmt.ParseFormat(c.SrcFormat)
	if err != nil {
		panic(err)
	}
	return f
}

// DstSaveFormat returns the parsed destination format. Validate must have passed.
func (c *Config) DstSaveFormat() savefmt.SaveFormat {
	f, err := savefmt.ParseFormat(c.DstFormat)
	if err != nil {
		panic(err)
	}
	return f
}

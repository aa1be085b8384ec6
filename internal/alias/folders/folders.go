// Package folders removes the filesystem folder a deleted alias leaves
// behind. Child-site aliases ("example.com/child") own a folder named after
// their path segment under the application root; bare hosts own nothing.
package folders

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"siteadmin/internal/alias/models"
)

// Cleaner deletes derived alias folders under a fixed application root.
type Cleaner struct {
	root string
}

func NewCleaner(root string) *Cleaner {
	return &Cleaner{root: filepath.Clean(root)}
}

// DeleteDerivedFolder removes the folder derived from the alias host, if one
// exists. A host without a derived folder, or a folder that is already gone,
// is not an error.
func (c *Cleaner) DeleteDerivedFolder(ctx context.Context, host string) error {
	folder := DerivedFolder(host)
	if folder == "" {
		return nil
	}
	if !filepath.IsLocal(folder) {
		return fmt.Errorf("derived folder %q escapes application root", folder)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(c.root, folder)
	if _, err := os.Stat(target); os.IsNotExist(err) {
		return nil
	}
	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("remove alias folder: %w", err)
	}
	return nil
}

// DerivedFolder returns the child-site folder encoded in the alias host
// ("example.com/child" -> "child"). A bare host has no derived folder.
func DerivedFolder(host string) string {
	key := models.HostKey(host)
	i := strings.IndexAny(key, `/\`)
	if i == -1 {
		return ""
	}
	folder := strings.Trim(key[i+1:], `/\`)
	if folder == "" {
		return ""
	}
	return filepath.FromSlash(strings.ReplaceAll(folder, `\`, "/"))
}

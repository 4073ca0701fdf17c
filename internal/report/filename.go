package report

import (
	"path/filepath"
	"time"
)

// FileName returns put_options_<YYYYMMDD>.<ext> for the given day
func FileName(t time.Time, ext string) string {
	return "put_options_" + t.Format("20060102") + "." + ext
}

// FilePath joins dir and FileName
func FilePath(dir string, t time.Time, ext string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, FileName(t, ext))
}

package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Auditor keeps raw request snapshots on disk for debugging conversions.
type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// Enabled reports whether snapshots are written at all.
func (a *Auditor) Enabled() bool {
	return a != nil && a.AuditDir != ""
}

// SaveJSON saves data as indented JSON under "<kind>-<uuid>.json" and
// returns the file name.
func (a *Auditor) SaveJSON(kind string, data any) (string, error) {
	if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create audit directory: %w", err)
	}

	filename := fmt.Sprintf("%s-%s.json", kind, uuid.NewString())
	path := filepath.Join(a.AuditDir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	log.Printf("[AUDIT] Saved snapshot %s", path)
	return filename, nil
}

package docstore

import "path/filepath"

// Layout resolves document locations under a data directory. One detail
// document per bank, one document per user for each of catalog, progress,
// answers, vignettes, and image metadata; image blobs live under media/.
type Layout struct {
	DataDir string
}

// UserDir returns the root directory for a user's documents.
func (l Layout) UserDir(user string) string {
	return filepath.Join(l.DataDir, "users", user)
}

// BanksDir returns the directory holding a user's bank detail documents.
func (l Layout) BanksDir(user string) string {
	return filepath.Join(l.UserDir(user), "banks")
}

// BankPath returns the detail document path for one bank.
func (l Layout) BankPath(user, bankID string) string {
	return filepath.Join(l.BanksDir(user), bankID+".json")
}

// CatalogPath returns the catalog document path.
func (l Layout) CatalogPath(user string) string {
	return filepath.Join(l.UserDir(user), "catalog.json")
}

// ProgressPath returns the progress document path.
func (l Layout) ProgressPath(user string) string {
	return filepath.Join(l.UserDir(user), "progress.json")
}

// AnswersPath returns the answer log document path.
func (l Layout) AnswersPath(user string) string {
	return filepath.Join(l.UserDir(user), "answers.json")
}

// VignettesPath returns the vignette document path.
func (l Layout) VignettesPath(user string) string {
	return filepath.Join(l.UserDir(user), "vignettes.json")
}

// ImagesPath returns the image metadata document path.
func (l Layout) ImagesPath(user string) string {
	return filepath.Join(l.UserDir(user), "images.json")
}

// MediaDir returns the directory holding a user's image blobs.
func (l Layout) MediaDir(user string) string {
	return filepath.Join(l.UserDir(user), "media")
}

// IndexPath returns the location of the disposable search index database.
func (l Layout) IndexPath() string {
	return filepath.Join(l.DataDir, "index.db")
}

package mock

import "time"

// Storage backends
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Config represents the development backend configuration
type Config struct {
	Port         int    `json:"port" yaml:"port"`                                     // Server port (default: 8080)
	Host         string `json:"host" yaml:"host"`                                     // Server host (default: localhost)
	APIBasePath  string `json:"apiBasePath,omitempty" yaml:"apiBasePath,omitempty"`   // Posts collection (default: /api/posts)
	GUIDPath     string `json:"guidPath,omitempty" yaml:"guidPath,omitempty"`         // GUID endpoint (default: /api/guid/generate)
	Storage      string `json:"storage,omitempty" yaml:"storage,omitempty"`           // memory or sqlite (default: memory)
	DatabasePath string `json:"databasePath,omitempty" yaml:"databasePath,omitempty"` // sqlite file
	SeedFile     string `json:"seedFile,omitempty" yaml:"seedFile,omitempty"`         // Initial posts and comments
	GUIDPoolSize int    `json:"guidPoolSize,omitempty" yaml:"guidPoolSize,omitempty"` // Pre-generated GUIDs (default: 100)
	Logging      bool   `json:"logging" yaml:"logging"`                               // Keep a request log
}

// Seed is the initial content of the board
type Seed struct {
	Posts []SeedPost `json:"posts" yaml:"posts"`
}

// SeedPost is one seeded post with its comments
type SeedPost struct {
	Title    string   `json:"title" yaml:"title"`
	Content  string   `json:"content" yaml:"content"`
	Comments []string `json:"comments,omitempty" yaml:"comments,omitempty"`
}

// RequestLog represents a logged request
type RequestLog struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Body      string        `json:"body"`
	Route     string        `json:"route"`
	Status    int           `json:"status"`
	Duration  time.Duration `json:"duration"`
}

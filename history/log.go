package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-billy/v6/osfs"
	git "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/cache"
	"github.com/go-git/go-git/v6/plumbing/filemode"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/storage/filesystem"
	"github.com/go-git/go-git/v6/storage/memory"

	"github.com/Razielxkx/Database-editor/core"
)

// Kind labels what a journal entry recorded.
type Kind string

const (
	KindCreateTable Kind = "create_table"
	KindDropTable   Kind = "drop_table"
	KindInsert      Kind = "insert"
	KindUpdate      Kind = "update"
	KindDelete      Kind = "delete"
)

// Entry is one journaled change. Statement holds the executed statement text
// for data changes; it is empty for schema changes.
type Entry struct {
	Kind      Kind      `json:"kind"`
	Table     string    `json:"table"`
	Statement string    `json:"statement,omitempty"`
	Rows      int64     `json:"rows,omitempty"`
	When      time.Time `json:"when"`
}

// Commit identifies one journal commit.
type Commit struct {
	Id     string
	When   time.Time
	Author string
}

func (commit Commit) String() string {
	return fmt.Sprintf("Commit{Id: %s, When: %s, Author: %s}", commit.Id, commit.When, commit.Author)
}

// Log is an append-only change journal backed by a git object store. Entries
// are committed directly through the plumbing; the worktree is never touched,
// so readers always go through the commit tree.
type Log struct {
	repo *git.Repository
	mu   sync.Mutex
}

// NewMemoryLog opens a journal that lives only for the process.
func NewMemoryLog() (*Log, error) {
	wt := memfs.New()
	storer := memory.NewStorage()

	repo, err := git.Init(storer, git.WithWorkTree(wt))
	if err != nil {
		return nil, err
	}
	return &Log{repo: repo}, nil
}

// NewFileLog opens (or initializes) a journal under baseDir.
func NewFileLog(baseDir string) (*Log, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	wt := osfs.New(baseDir)
	fs, err := wt.Chroot(".git")
	if err != nil {
		return nil, err
	}

	storer := filesystem.NewStorageWithOptions(
		fs,
		cache.NewObjectLRUDefault(),
		filesystem.Options{ExclusiveAccess: true})

	var repo *git.Repository
	if _, statErr := os.Stat(fs.Root()); statErr != nil {
		repo, err = git.Init(storer, git.WithWorkTree(wt))
	} else {
		repo, err = git.Open(storer, wt)
	}
	if err != nil {
		return nil, err
	}

	return &Log{repo: repo}, nil
}

// Record appends one entry as a commit authored by identity.
func (log *Log) Record(entry Entry, identity core.Identity) error {
	log.mu.Lock()
	defer log.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode journal entry: %w", err)
	}

	blobHash, err := log.createBlob(data)
	if err != nil {
		return err
	}

	currentTree, err := log.currentTree()
	if err != nil {
		return err
	}

	entryPath := path.Join("journal", entry.Table,
		fmt.Sprintf("%d.json", entry.When.UnixNano()))
	newTree, err := log.updateTreePath(currentTree, entryPath, blobHash)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("%s %s", entry.Kind, entry.Table)
	_, err = log.commit(newTree, identity, message)
	return err
}

// Head returns the latest journal commit, or a zero Commit when the journal
// is empty.
func (log *Log) Head() Commit {
	headRef, err := log.repo.Head()
	if err != nil || headRef == nil {
		return Commit{}
	}

	commit, err := log.repo.CommitObject(headRef.Hash())
	if err != nil {
		return Commit{}
	}

	author := ""
	if commit.Author.Name != "" || commit.Author.Email != "" {
		author = fmt.Sprintf("%s <%s>", commit.Author.Name, commit.Author.Email)
	}

	return Commit{
		Id:     headRef.Hash().String(),
		When:   commit.Committer.When,
		Author: author,
	}
}

// CommitsSince lists journal commits at or after asof, newest first.
func (log *Log) CommitsSince(asof time.Time) []Commit {
	var commits []Commit

	iter, err := log.repo.Log(&git.LogOptions{Since: &asof})
	if err != nil {
		return nil
	}

	iter.ForEach(func(c *object.Commit) error {
		author := ""
		if c.Author.Name != "" || c.Author.Email != "" {
			author = fmt.Sprintf("%s <%s>", c.Author.Name, c.Author.Email)
		}
		commits = append(commits, Commit{
			Id:     c.Hash.String(),
			When:   c.Committer.When,
			Author: author,
		})
		return nil
	})

	return commits
}

// Entries reads back the journaled entries for one table, oldest first. An
// empty table name reads the whole journal.
func (log *Log) Entries(table string) ([]Entry, error) {
	headRef, err := log.repo.Head()
	if err != nil {
		return nil, nil
	}

	commit, err := log.repo.CommitObject(headRef.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read journal head: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to read journal tree: %w", err)
	}

	prefix := "journal"
	if table != "" {
		prefix = path.Join(prefix, table)
	}

	var entries []Entry
	walker := object.NewTreeWalker(tree, true, nil)
	defer walker.Close()
	for {
		name, treeEntry, err := walker.Next()
		if err != nil {
			break
		}
		if treeEntry.Mode == filemode.Dir || !withinPrefix(name, prefix) {
			continue
		}

		file, err := tree.File(name)
		if err != nil {
			return nil, err
		}
		content, err := file.Contents()
		if err != nil {
			return nil, err
		}

		var entry Entry
		if err := json.Unmarshal([]byte(content), &entry); err != nil {
			return nil, fmt.Errorf("corrupt journal entry %s: %w", name, err)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].When.Before(entries[j].When)
	})
	return entries, nil
}

func withinPrefix(name, prefix string) bool {
	if len(name) <= len(prefix) {
		return false
	}
	return name[:len(prefix)] == prefix && name[len(prefix)] == '/'
}

package history

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/filemode"
	"github.com/go-git/go-git/v6/plumbing/object"

	"github.com/Razielxkx/Database-editor/core"
)

// createBlob writes data into the object store without filesystem I/O.
func (log *Log) createBlob(data []byte) (plumbing.Hash, error) {
	obj := log.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to create blob writer: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("failed to write blob: %w", err)
	}
	writer.Close()

	hash, err := log.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to store blob: %w", err)
	}
	return hash, nil
}

// currentTree returns the tree of HEAD, or ZeroHash before the first commit.
func (log *Log) currentTree() (plumbing.Hash, error) {
	headRef, err := log.repo.Head()
	if err != nil {
		return plumbing.ZeroHash, nil
	}

	commit, err := log.repo.CommitObject(headRef.Hash())
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to get head commit: %w", err)
	}
	return commit.TreeHash, nil
}

func (log *Log) treeEntries(treeHash plumbing.Hash) (map[string]object.TreeEntry, error) {
	entries := make(map[string]object.TreeEntry)
	if treeHash == plumbing.ZeroHash {
		return entries, nil
	}

	tree, err := object.GetTree(log.repo.Storer, treeHash)
	if err != nil {
		return nil, fmt.Errorf("failed to get tree: %w", err)
	}
	for _, entry := range tree.Entries {
		entries[entry.Name] = entry
	}
	return entries, nil
}

func (log *Log) buildTree(entries map[string]object.TreeEntry) (plumbing.Hash, error) {
	slice := make([]object.TreeEntry, 0, len(entries))
	for _, entry := range entries {
		slice = append(slice, entry)
	}

	// Git orders tree entries with directories compared as name plus slash.
	sort.Slice(slice, func(i, j int) bool {
		nameI, nameJ := slice[i].Name, slice[j].Name
		if slice[i].Mode == filemode.Dir {
			nameI += "/"
		}
		if slice[j].Mode == filemode.Dir {
			nameJ += "/"
		}
		return nameI < nameJ
	})

	tree := &object.Tree{Entries: slice}
	obj := log.repo.Storer.NewEncodedObject()
	if err := tree.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to encode tree: %w", err)
	}

	hash, err := log.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to store tree: %w", err)
	}
	return hash, nil
}

// updateTreePath sets a blob at a slash-separated path and returns the new
// root tree hash.
func (log *Log) updateTreePath(rootTree plumbing.Hash, filePath string, blobHash plumbing.Hash) (plumbing.Hash, error) {
	return log.updateTreeRecursive(rootTree, strings.Split(filePath, "/"), blobHash)
}

func (log *Log) updateTreeRecursive(treeHash plumbing.Hash, parts []string, blobHash plumbing.Hash) (plumbing.Hash, error) {
	if len(parts) == 0 {
		return plumbing.ZeroHash, fmt.Errorf("empty path")
	}

	entries, err := log.treeEntries(treeHash)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	name := parts[0]
	if len(parts) == 1 {
		entries[name] = object.TreeEntry{
			Name: name,
			Mode: filemode.Regular,
			Hash: blobHash,
		}
	} else {
		subTree := plumbing.ZeroHash
		if existing, ok := entries[name]; ok && existing.Mode == filemode.Dir {
			subTree = existing.Hash
		}

		newSubTree, err := log.updateTreeRecursive(subTree, parts[1:], blobHash)
		if err != nil {
			return plumbing.ZeroHash, err
		}
		entries[name] = object.TreeEntry{
			Name: name,
			Mode: filemode.Dir,
			Hash: newSubTree,
		}
	}

	return log.buildTree(entries)
}

// commit writes a commit for treeHash and moves the branch reference.
func (log *Log) commit(treeHash plumbing.Hash, identity core.Identity, message string) (Commit, error) {
	var parents []plumbing.Hash
	headRef, err := log.repo.Head()
	if err == nil {
		parents = []plumbing.Hash{headRef.Hash()}
	}

	sig := object.Signature{
		Name:  identity.Name,
		Email: identity.Email,
		When:  time.Now(),
	}

	commit := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      message,
		TreeHash:     treeHash,
		ParentHashes: parents,
	}

	obj := log.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return Commit{}, fmt.Errorf("failed to encode commit: %w", err)
	}

	commitHash, err := log.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return Commit{}, fmt.Errorf("failed to store commit: %w", err)
	}

	branch := plumbing.Master
	if headRef != nil && headRef.Name().IsBranch() {
		branch = headRef.Name()
	}
	ref := plumbing.NewHashReference(branch, commitHash)
	if err := log.repo.Storer.SetReference(ref); err != nil {
		return Commit{}, fmt.Errorf("failed to move branch: %w", err)
	}

	return Commit{
		Id:     commitHash.String(),
		When:   sig.When,
		Author: fmt.Sprintf("%s <%s>", identity.Name, identity.Email),
	}, nil
}

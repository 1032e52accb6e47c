//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package ih writes conversion artifacts: one .txt and/or one .json per
// source file, grouped under an export directory named after the batch.
package ih

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oli-do/PAPYRSER/internal/gen"
	"github.com/oli-do/PAPYRSER/internal/mm"
	"github.com/oli-do/PAPYRSER/internal/str"
	"github.com/oli-do/PAPYRSER/internal/vv"
)

// IOHandler - owns the export directory layout; goroutine safe because
// it only ever creates directories and writes distinct files
type IOHandler struct {
	Msg       *mm.MessageMaker
	Root      string // the export root, normally ./export
	BatchName string // subdirectory for the current run, e.g. "5015-5017"
}

func NewIOHandler(msg *mm.MessageMaker, root string) *IOHandler {
	if msg == nil {
		msg = mm.NewMessageMaker("ih", "", "IOH")
	}
	if root == "" {
		root = vv.EXPORTDIR
	}
	return &IOHandler{Msg: msg, Root: root}
}

// SetExportDirectory names the per-run subdirectory. Filter names can
// carry spaces and path separators; those never reach the filesystem.
func (h *IOHandler) SetExportDirectory(name string) {
	const UNSAFE = ` /\:*?"<>|`
	h.BatchName = gen.Purgechars(UNSAFE, name)
	h.Msg.PEEK("export directory set to " + h.BatchName)
}

func (h *IOHandler) CreateFolder(path string) error {
	if e := os.MkdirAll(path, vv.FOLDERPERMS); e != nil {
		return fmt.Errorf("unable to create folder %s: %w", path, e)
	}
	return nil
}

// WriteTxt writes the plain-text artifact: lines in document order, text
// parts separated only by the line break, no trailing newline.
func (h *IOHandler) WriteTxt(o *str.Output) (string, error) {
	dir := filepath.Join(h.Root, h.BatchName, vv.TXTSUBDIR)
	if e := h.CreateFolder(dir); e != nil {
		return "", e
	}
	var lines []string
	for _, part := range o.Parts {
		lines = append(lines, part...)
	}
	path := filepath.Join(dir, fmt.Sprintf("%d_%s.txt", o.TM, o.Name))
	if e := os.WriteFile(path, []byte(strings.Join(lines, "\n")), vv.WRITEPERMS); e != nil {
		return "", fmt.Errorf("unable to write %s: %w", path, e)
	}
	h.Msg.PEEK("wrote " + path)
	return path, nil
}

// the json artifact: a head block for quick inspection, then one block
// of numbered lines per text part

type jsonhead struct {
	TM       int    `json:"tm"`
	Name     string `json:"name"`
	Parts    int    `json:"textparts"`
	Lines    int    `json:"lines"`
	Standard string `json:"standard"`
}

type jsondoc struct {
	Head   jsonhead         `json:"head"`
	Blocks []str.PartRecord `json:"text_blocks"`
}

// WriteJSON writes the structured artifact.
func (h *IOHandler) WriteJSON(o *str.Output) (string, error) {
	dir := filepath.Join(h.Root, h.BatchName, vv.JSONSUBDIR)
	if e := h.CreateFolder(dir); e != nil {
		return "", e
	}
	doc := jsondoc{
		Head: jsonhead{
			TM:       o.TM,
			Name:     o.Name,
			Parts:    len(o.Parts),
			Lines:    o.TotalLines(),
			Standard: vv.TEXTSTANDARD,
		},
		Blocks: o.Records,
	}
	b, e := json.Marshal(doc)
	if e != nil {
		return "", e
	}
	path := filepath.Join(dir, fmt.Sprintf("%d_%s.json", o.TM, o.Name))
	if e := os.WriteFile(path, b, vv.WRITEPERMS); e != nil {
		return "", fmt.Errorf("unable to write %s: %w", path, e)
	}
	h.Msg.PEEK("wrote " + path)
	return path, nil
}

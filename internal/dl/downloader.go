//    PAPYRSER
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

// Package dl fetches the papyri.info corpus: one zip of the idp.data
// repository, of which only the DCLP and DDB_EpiDoc_XML trees are kept.
package dl

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/oli-do/PAPYRSER/internal/mm"
	"github.com/oli-do/PAPYRSER/internal/vv"
)

// Downloader - fetches and unpacks the corpus into the data directory
type Downloader struct {
	Msg     *mm.MessageMaker
	URL     string
	DataDir string
}

func NewDownloader(msg *mm.MessageMaker, datadir string) *Downloader {
	if msg == nil {
		msg = mm.NewMessageMaker("dl", "", "DLD")
	}
	return &Downloader{Msg: msg, URL: vv.PAPYRIDATAURL, DataDir: datadir}
}

// progresswriter reports transfer volume at coarse intervals; the zip is
// large and the server does not send a length for it.
type progresswriter struct {
	msg   *mm.MessageMaker
	total int64
	mark  int64
}

const PROGRESSSTEP = 100 * 1024 * 1024

func (pw *progresswriter) Write(p []byte) (int, error) {
	pw.total += int64(len(p))
	if pw.total-pw.mark >= PROGRESSSTEP {
		pw.mark = pw.total
		pr := message.NewPrinter(language.English)
		pw.msg.NOTE(pr.Sprintf("downloaded %d bytes", pw.total))
	}
	return len(p), nil
}

// Fetch downloads the corpus zip, extracts the two transcription trees
// and drops the stale TM index so the next run rebuilds it.
func (d *Downloader) Fetch() error {
	if e := os.MkdirAll(d.DataDir, vv.FOLDERPERMS); e != nil {
		return e
	}
	tmp := filepath.Join(d.DataDir, "temp.zip")
	defer os.Remove(tmp)

	d.Msg.NOTE("downloading compressed papyri.info data from " + d.URL)
	client := &http.Client{Timeout: vv.DLTIMEOUT}
	resp, e := client.Get(d.URL)
	if e != nil {
		return fmt.Errorf("download failed: %w", e)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: status code %d", resp.StatusCode)
	}

	f, e := os.Create(tmp)
	if e != nil {
		return e
	}
	pw := &progresswriter{msg: d.Msg}
	_, e = io.Copy(io.MultiWriter(f, pw), resp.Body)
	if ce := f.Close(); e == nil {
		e = ce
	}
	if e != nil {
		return fmt.Errorf("download failed: %w", e)
	}

	d.Msg.NOTE("extracting transcription files")
	n, e := d.extract(tmp)
	if e != nil {
		return e
	}
	pr := message.NewPrinter(language.English)
	d.Msg.NOTE(pr.Sprintf("extracted %d files", n))

	// the old index no longer matches the corpus on disk
	idxpath := filepath.Join(d.DataDir, vv.TMINDEXDB)
	if _, e := os.Stat(idxpath); e == nil {
		_ = os.Remove(idxpath)
	}
	return nil
}

// extract unpacks only DCLP and DDB_EpiDoc_XML entries, refusing paths
// that would escape the data directory.
func (d *Downloader) extract(zippath string) (int, error) {
	zr, e := zip.OpenReader(zippath)
	if e != nil {
		return 0, e
	}
	defer zr.Close()

	n := 0
	for _, zf := range zr.File {
		if !strings.Contains(zf.Name, vv.DCLPDIR) && !strings.Contains(zf.Name, vv.DDBDIR) {
			continue
		}
		dest := filepath.Join(d.DataDir, filepath.Clean(zf.Name))
		if !strings.HasPrefix(dest, filepath.Clean(d.DataDir)+string(filepath.Separator)) {
			return n, fmt.Errorf("zip entry escapes data directory: %s", zf.Name)
		}
		if zf.FileInfo().IsDir() {
			if e = os.MkdirAll(dest, vv.FOLDERPERMS); e != nil {
				return n, e
			}
			continue
		}
		if e = os.MkdirAll(filepath.Dir(dest), vv.FOLDERPERMS); e != nil {
			return n, e
		}
		rc, e := zf.Open()
		if e != nil {
			return n, e
		}
		out, e := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, vv.WRITEPERMS)
		if e != nil {
			rc.Close()
			return n, e
		}
		_, e = io.Copy(out, rc)
		rc.Close()
		if ce := out.Close(); e == nil {
			e = ce
		}
		if e != nil {
			return n, e
		}
		n++
	}
	return n, nil
}

package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"rtfhtml/archive"
	"rtfhtml/common"
	"rtfhtml/markup"
	"rtfhtml/rtf"
	"rtfhtml/state"
)

// Run is convert command action.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if name := cmd.String("template"); len(name) > 0 {
		kind, err := common.ParseTemplateKind(name)
		if err != nil {
			return fmt.Errorf("unknown template requested: %w", err)
		}
		env.Cfg.Document.Template.Kind = kind
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	rnd, err := newRenderer(&env.Cfg.Document, log)
	if err != nil {
		return fmt.Errorf("unable to prepare renderer: %w", err)
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst),
		zap.Stringer("template", env.Cfg.Document.Template.Kind))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, rnd, log)
}

// process determines what source is (directory, archive, path inside
// archive or single document) and converts everything it finds. Failure
// to convert any document is reported, but does not stop the batch.
func process(ctx context.Context, src, dst string, rnd *markup.Renderer, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, dst, rnd, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			return nil
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			pathIn := filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := processArchive(ctx, head, pathIn, "", dst, rnd, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			return nil
		}

		ok, format, enc, err := isDocumentFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if !ok || len(tail) != 0 {
			return fmt.Errorf("input was not recognized as document (%s)", head)
		}
		return processFile(ctx, head, filepath.Base(head), format, enc, dst, rnd, log)
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

func processFile(ctx context.Context, path, src string, format common.InputFmt, enc srcEncoding, dst string, rnd *markup.Renderer, log *zap.Logger) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to process file: %w", err)
	}
	defer file.Close()

	if err := processDocument(ctx, selectReader(file, enc), format, src, dst, rnd, log); err != nil {
		log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// processDir converts every document and archive under directory. Entries
// are processed in natural order of their relative paths.
func processDir(ctx context.Context, dir, dst string, rnd *markup.Renderer, log *zap.Logger) (err error) {
	var paths []string
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if walkErr != nil {
		return walkErr
	}
	sort.Sort(natural.StringSlice(paths))

	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	for _, path := range paths {
		if er := ctx.Err(); er != nil {
			return multierr.Append(err, er)
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		isArchive, er := isArchiveFile(path)
		if er != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(er))
			continue
		}
		if isArchive {
			count++
			if er := processArchive(ctx, path, "", filepath.Dir(rel), dst, rnd, log); er != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(er))
				err = multierr.Append(err, fmt.Errorf("%s: %w", path, er))
			}
			continue
		}

		ok, format, enc, er := isDocumentFile(path)
		if er != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(er))
			continue
		}
		if !ok {
			log.Debug("Skipping file, not recognized as document or archive", zap.String("file", path))
			continue
		}

		count++
		err = multierr.Append(err, processFile(ctx, path, rel, format, enc, dst, rnd, log))
	}
	return err
}

// processArchive converts all documents inside archive under "pathIn".
// "pathOut" is archive directory relative to processed source directory.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, rnd *markup.Renderer, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	cp := state.EnvFromContext(ctx).CodePage

	var failed error
	err = archive.Walk(path, pathIn, func(archive string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		ok, format, enc, err := isDocumentInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive",
				zap.String("archive", archive), zap.String("path", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		if !ok {
			log.Debug("Skipping file, not recognized as document", zap.String("archive", archive), zap.String("file", f.FileHeader.Name))
			return nil
		}

		count++

		pathInArchive := f.FileHeader.Name
		if cp != nil && f.FileHeader.NonUTF8 {
			// forcing zip file name encoding
			if n, err := cp.NewDecoder().String(pathInArchive); err == nil {
				pathInArchive = n
			} else {
				n, _ = ianaindex.IANA.Name(cp)
				log.Warn("Unable to convert archive name from specified encoding",
					zap.String("charset", n), zap.String("path", pathInArchive), zap.Error(err))
			}
		}

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.FileHeader.Name), zap.Error(err))
			failed = multierr.Append(failed, err)
			return nil
		}
		defer r.Close()

		if err := processDocument(ctx, selectReader(r, enc), format, filepath.Join(pathOut, filepath.FromSlash(pathInArchive)), dst, rnd, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.FileHeader.Name), zap.Error(err))
			failed = multierr.Append(failed, fmt.Errorf("%s: %w", f.FileHeader.Name, err))
		}
		return nil
	})
	return multierr.Append(err, failed)
}

// processDocument converts single document. "src" is source path relative
// to what was requested (base file name for a single file, path inside
// directory or archive otherwise), it determines output location under
// "dst". Panic during conversion is reported as error, so batch could go on.
func processDocument(ctx context.Context, r io.Reader, format common.InputFmt, src, dst string, rnd *markup.Renderer, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	refID := uuid.NewString()
	var outputName string

	log.Info("Conversion starting", zap.String("from", src), zap.String("ref_id", refID))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.String("ref_id", refID))
		}
	}(time.Now())

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("unable to read source (%s): %w", src, err)
	}
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("source/%s-%s", refID, filepath.Base(src)), data)
	}

	doc, err := rtf.Decode(bytes.NewReader(data), format)
	if err != nil {
		return fmt.Errorf("unable to decode source (%s): %w", src, err)
	}

	out, err := rnd.Render(doc)
	if err != nil {
		return fmt.Errorf("unable to render document (%s): %w", src, err)
	}

	outputName = buildOutputPath(newValues(doc, src, refID, &env.Cfg.Document), src, dst, env)
	if err := prepareDestination(outputName, env.Overwrite, log); err != nil {
		return err
	}
	if err := os.WriteFile(outputName, []byte(out), 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result/%s%s", refID, filepath.Ext(outputName)), outputName)
	}
	return nil
}

// prepareDestination makes sure output file could be written.
func prepareDestination(name string, overwrite bool, log *zap.Logger) error {
	_, err := os.Stat(name)
	switch {
	case err == nil:
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
		return nil
	case !os.IsNotExist(err):
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}

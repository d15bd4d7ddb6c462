package convert

import (
	"context"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"rtfhtml/rtf"
	"rtfhtml/state"
)

// Dump is dump command action: decodes single document and writes its tree
// to destination file or STDOUT.
func Dump(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("dump")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	doc, err := readDocument(src)
	if err != nil {
		return err
	}

	out := os.Stdout
	fname := cmd.Args().Get(1)
	if len(fname) > 0 {
		if out, err = os.Create(fname); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
	} else {
		fname = "STDOUT"
	}

	log.Info("Dumping document", zap.String("source", src), zap.String("file", fname), zap.Int("paragraphs", len(doc.Content)))
	if _, err := out.WriteString(doc.String()); err != nil {
		return fmt.Errorf("unable to write document dump: %w", err)
	}
	return nil
}

func readDocument(path string) (*rtf.Document, error) {
	ok, format, enc, err := isDocumentFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to check file type: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("input was not recognized as document (%s)", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := rtf.Decode(selectReader(f, enc), format)
	if err != nil {
		return nil, fmt.Errorf("unable to decode source (%s): %w", path, err)
	}
	return doc, nil
}

// filediff computes the signature of a text file, and later the delta of a
// new version of that file against the signature only.
package main

import (
	"bytes"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/kaiakz/filediff/fldb"
	"github.com/kaiakz/filediff/rsync"
	"github.com/kaiakz/filediff/storage"
)

// Fingerprint a baseline file, through the signature cache when it is enabled
func makeSignature(path string, conf *Config) ([]byte, error) {
	if !conf.CacheEnabled {
		sig, err := rsync.NewSignature(path, rsync.Baseline)
		if err != nil {
			return nil, err
		}
		return sig.MarshalBinary()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &rsync.NotFoundError{Path: path, Err: err}
	}
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	cache, err := fldb.Open(conf.CachePath, conf.CacheBucket)
	if err != nil {
		return nil, err
	}
	defer cache.Close()

	size, mtime := info.Size(), info.ModTime().UnixNano()
	entry, err := cache.Get(key)
	switch {
	case err == nil && entry.Fresh(size, mtime):
		log.Println("Signature cache hit", key)
		return entry.Signature, nil
	case err != nil && !errors.Is(err, fldb.ErrMiss):
		log.Println("Ignore cached signature:", err)
	}

	sig, err := rsync.NewSignature(path, rsync.Baseline)
	if err != nil {
		return nil, err
	}
	blob, err := sig.MarshalBinary()
	if err != nil {
		return nil, err
	}
	if err := cache.Put(key, fldb.NewEntry(size, mtime, blob)); err != nil {
		return nil, errors.Wrap(err, "update signature cache")
	}
	return blob, nil
}

func makeDelta(sigFile string, newData string, conf *Config) (*rsync.Calculator, error) {
	sig, err := rsync.NewSignature(sigFile, rsync.SignatureFile)
	if err != nil {
		return nil, err
	}
	if sig.Truncated() {
		if conf.Strict {
			return nil, errors.Wrap(sig.Verify(), sigFile)
		}
		log.Printf("%s is truncated: %d of %d hashes\n", sigFile, len(sig.Hashes()), sig.Metadata().ChunkCount)
	}

	calc, err := rsync.NewCalculatorFromSignature(sig, newData)
	if err != nil {
		return nil, err
	}
	if err := calc.Calculate(); err != nil {
		return nil, err
	}
	return calc, nil
}

// Write an artifact to stdout, or through the storage backend when a name is given
func output(fs storage.FS, name string, blob []byte, stdout io.Writer) error {
	if name == "" {
		_, err := stdout.Write(blob)
		return err
	}
	_, err := fs.Put(name, bytes.NewReader(blob), int64(len(blob)))
	return errors.Wrapf(err, "put %s", name)
}

func run(cli *Cli, stdout io.Writer) error {
	if cli.Init {
		return createSampleConfig(cli.Config)
	}

	conf, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}

	var fs storage.FS
	if cli.OutFile != "" {
		if fs, err = openStorage(conf); err != nil {
			return err
		}
	}

	if cli.Signature {
		blob, err := makeSignature(cli.InFile, conf)
		if err != nil {
			return err
		}
		return output(fs, cli.OutFile, blob, stdout)
	}

	calc, err := makeDelta(cli.SigFile, cli.NewData, conf)
	if err != nil {
		return err
	}
	if !calc.IsChanged() {
		log.Println("No change detected")
		if fs != nil {
			// A delta left from an earlier run would be stale
			return fs.Delete(cli.OutFile)
		}
		return nil
	}
	buf := new(bytes.Buffer)
	if err := calc.SerializeDelta(buf); err != nil {
		return err
	}
	return output(fs, cli.OutFile, buf.Bytes(), stdout)
}

func main() {
	cli, err := ParseArgs(os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		return
	}
	if err != nil {
		log.Fatalln(err)
	}

	startTime := time.Now()
	if err := run(cli, os.Stdout); err != nil {
		log.Fatalln("error:", err)
	}
	log.Println("Duration:", time.Since(startTime))
}

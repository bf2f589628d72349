// Command datalogctl exercises a DataLog engine instance against a
// file-backed partition: creating and initializing one, appending the
// record kinds an application would emit, and dumping its contents
// back out as human-readable entries.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikee47/datalog/internal/config"
	"github.com/mikee47/datalog/internal/datalog"
	"github.com/mikee47/datalog/internal/entry"
	"github.com/mikee47/datalog/internal/partition"
	"github.com/mikee47/datalog/internal/reader"
	"github.com/mikee47/datalog/internal/schema"
	logpkg "github.com/mikee47/datalog/pkg/log"
)

func main() {
	level, err := logpkg.ParseLevel(os.Getenv("DATALOG_LOG_LEVEL"))
	if err != nil {
		level = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(level),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)

	if err := newRootCommand(logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(logger logpkg.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "datalogctl",
		Short: "Inspect and exercise a DataLog flash-partition image",
	}
	root.PersistentFlags().String("partition", config.DefaultPartitionPath(), "path to the partition image file")
	root.PersistentFlags().Int("flash-page-size", config.Default().FlashPageSize, "flash page size in bytes")
	root.PersistentFlags().Int("pages-per-block", config.Default().PagesPerBlock, "flash pages per log block")
	root.PersistentFlags().Int("total-blocks", 0, "number of blocks in the partition (required for init)")

	root.AddCommand(newInitCommand(logger))
	root.AddCommand(newBootCommand(logger))
	root.AddCommand(newTimeCommand(logger))
	root.AddCommand(newTableCommand(logger))
	root.AddCommand(newFieldCommand(logger))
	root.AddCommand(newDataCommand(logger))
	root.AddCommand(newDumpCommand(logger))
	return root
}

func geometryFromFlags(cmd *cobra.Command) config.Config {
	cfg := config.Default()
	cfg.FlashPageSize, _ = cmd.Flags().GetInt("flash-page-size")
	cfg.PagesPerBlock, _ = cmd.Flags().GetInt("pages-per-block")
	cfg.MaxTotalBlocks, _ = cmd.Flags().GetInt("total-blocks")
	return cfg
}

// openExisting opens the partition file named by --partition at its
// current size (optionally clamped by --total-blocks) and scans it
// into a ready Log.
func openExisting(cmd *cobra.Command, logger logpkg.Logger) (*datalog.Log, *partition.File, error) {
	path, _ := cmd.Flags().GetString("partition")
	cfg := geometryFromFlags(cmd)

	p, err := partition.OpenFile(partition.FileOptions{
		Path:        path,
		BlockSize:   cfg.BlockSize(),
		TotalBlocks: cfg.MaxTotalBlocks,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open partition %s: %w", path, err)
	}
	log, err := datalog.Open(p, datalog.WithLogger(logger))
	if err != nil {
		p.Close()
		return nil, nil, fmt.Errorf("scan partition %s: %w", path, err)
	}
	return log, p, nil
}

// initPartitionFile creates path if missing and sets its length to
// blockSize*totalBlocks, then erases the whole span to 0xFF if the file
// is new or force is set. An existing file is resized without force but
// not erased.
func initPartitionFile(path string, blockSize, totalBlocks int, force bool) (*partition.File, error) {
	if totalBlocks <= 0 {
		return nil, errors.New("datalogctl: --total-blocks must be positive for init")
	}
	size := int64(blockSize) * int64(totalBlocks)

	existed := true
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		existed = false
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		return nil, err
	}
	f.Close()

	p, err := partition.OpenFile(partition.FileOptions{Path: path, BlockSize: blockSize, TotalBlocks: totalBlocks})
	if err != nil {
		return nil, err
	}
	if !existed || force {
		if err := p.EraseRange(0, p.Size()); err != nil {
			p.Close()
			return nil, err
		}
	}
	return p, nil
}

func newInitCommand(logger logpkg.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create and erase a new partition image",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("partition")
			force, _ := cmd.Flags().GetBool("force")
			cfg := geometryFromFlags(cmd)

			p, err := initPartitionFile(path, cfg.BlockSize(), cfg.MaxTotalBlocks, force)
			if err != nil {
				return err
			}
			defer p.Close()

			log, err := datalog.Open(p, datalog.WithLogger(logger))
			if err != nil {
				return fmt.Errorf("scan partition %s: %w", path, err)
			}
			fmt.Printf("initialized %s: blockSize=%d totalBlocks=%d state=%s\n",
				path, log.BlockSize(), log.TotalBlocks(), log.State())
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "re-erase an existing partition file")
	return cmd
}

func newBootCommand(logger logpkg.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "boot",
		Short: "Append a boot marker",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, p, err := openExisting(cmd, logger)
			if err != nil {
				return err
			}
			defer p.Close()
			if err := schema.NewWriter(log).WriteBoot(); err != nil {
				return err
			}
			fmt.Printf("boot written: endBlock=%+v writeOffset=%d\n", log.EndBlock(), log.WriteOffset())
			return nil
		},
	}
}

func newTimeCommand(logger logpkg.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "time",
		Short: "Append a time-correlation record",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, p, err := openExisting(cmd, logger)
			if err != nil {
				return err
			}
			defer p.Close()
			if err := schema.NewWriter(log).WriteTime(); err != nil {
				return err
			}
			fmt.Printf("time written: endBlock=%+v writeOffset=%d\n", log.EndBlock(), log.WriteOffset())
			return nil
		},
	}
}

func newTableCommand(logger logpkg.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Declare a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			log, p, err := openExisting(cmd, logger)
			if err != nil {
				return err
			}
			defer p.Close()
			id, err := schema.NewWriter(log).WriteTable(name)
			if err != nil {
				return err
			}
			fmt.Printf("table %q declared with id %d\n", name, id)
			return nil
		},
	}
	cmd.Flags().String("name", "", "table name")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newFieldCommand(logger logpkg.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Declare a field",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetUint16("id")
			typeName, _ := cmd.Flags().GetString("type")
			size, _ := cmd.Flags().GetUint8("size")
			variable, _ := cmd.Flags().GetBool("variable")
			name, _ := cmd.Flags().GetString("name")

			typ, err := parseFieldType(typeName)
			if err != nil {
				return err
			}

			log, p, err := openExisting(cmd, logger)
			if err != nil {
				return err
			}
			defer p.Close()
			if err := schema.NewWriter(log).WriteField(id, typ, size, variable, name); err != nil {
				return err
			}
			fmt.Printf("field %q (id=%d type=%s) declared\n", name, id, typ)
			return nil
		},
	}
	cmd.Flags().Uint16("id", 0, "application-assigned field id")
	cmd.Flags().String("type", "unsigned", "field type: unsigned|signed|float|char")
	cmd.Flags().Uint8("size", 1, "per-element size in bytes")
	cmd.Flags().Bool("variable", false, "variable-length field")
	cmd.Flags().String("name", "", "field name")
	cmd.MarkFlagRequired("name")
	return cmd
}

func parseFieldType(name string) (entry.FieldType, error) {
	switch name {
	case "unsigned":
		return entry.Unsigned, nil
	case "signed":
		return entry.Signed, nil
	case "float":
		return entry.Float, nil
	case "char":
		return entry.Char, nil
	default:
		return 0, fmt.Errorf("datalogctl: unknown field type %q", name)
	}
}

func newDataCommand(logger logpkg.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Append a data row",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, _ := cmd.Flags().GetUint16("table")
			hexBytes, _ := cmd.Flags().GetString("hex")
			row, err := hex.DecodeString(hexBytes)
			if err != nil {
				return fmt.Errorf("datalogctl: invalid --hex: %w", err)
			}

			log, p, err := openExisting(cmd, logger)
			if err != nil {
				return err
			}
			defer p.Close()
			if err := schema.NewWriter(log).WriteData(entry.TableID(table), row); err != nil {
				return err
			}
			fmt.Printf("data row written for table %d (%d bytes)\n", table, len(row))
			return nil
		},
	}
	cmd.Flags().Uint16("table", 0, "table id")
	cmd.Flags().String("hex", "", "row bytes, hex-encoded")
	return cmd
}

func newDumpCommand(logger logpkg.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print entries in a block span as human-readable lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			startSeq, _ := cmd.Flags().GetUint32("start-seq")
			blockCount, _ := cmd.Flags().GetUint32("block-count")

			log, p, err := openExisting(cmd, logger)
			if err != nil {
				return err
			}
			defer p.Close()

			if startSeq == 0 {
				startSeq = log.StartBlock().Sequence
			}
			return dumpEntries(cmd.OutOrStdout(), reader.New(log, startSeq, blockCount))
		},
	}
	cmd.Flags().Uint32("start-seq", 0, "first block sequence to dump (default: the oldest live block)")
	cmd.Flags().Uint32("block-count", 0, "number of blocks to dump (0 = to the live end)")
	return cmd
}

// dumpEntries walks r as a concatenation of {header, payload, pad}
// records, printing one line per entry until the stream is exhausted.
func dumpEntries(w io.Writer, r *reader.Reader) error {
	hdrBuf := make([]byte, entry.HeaderSize)
	for {
		if _, err := io.ReadFull(r, hdrBuf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return err
		}
		var h entry.Header
		if err := h.UnmarshalBinary(hdrBuf); err != nil {
			return err
		}
		if h.Kind == entry.KindErased {
			return nil
		}

		payload := make([]byte, h.Size)
		if len(payload) > 0 {
			if _, err := io.ReadFull(r, payload); err != nil {
				return err
			}
		}
		if pad := entry.AlignUp4(int(h.Size)) - int(h.Size); pad > 0 {
			if _, err := io.CopyN(io.Discard, r, int64(pad)); err != nil {
				return err
			}
		}

		status := "ok"
		if h.Invalid() {
			status = "torn"
		}
		fmt.Fprintf(w, "%-10s size=%-4d %s\n", h.Kind, h.Size, status)
	}
}

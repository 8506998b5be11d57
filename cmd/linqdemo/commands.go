package main

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"math"
	"math/big"
	"slices"
	"strconv"
	"strings"

	"gym-listings/seq"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type dumper struct {
	out    io.Writer
	asYAML bool
}

// dump imprime um resultado nomeado: "label: <json>" ou um documento YAML.
func (d dumper) dump(label string, vs []seq.Value) error {
	if d.asYAML {
		seqNode := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, v := range vs {
			seqNode.Content = append(seqNode.Content, scalarNode(v))
		}
		doc := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: label},
			seqNode,
		}}
		enc := yaml.NewEncoder(d.out)
		defer func() { _ = enc.Close() }()
		return enc.Encode(doc)
	}

	if vs == nil {
		vs = []seq.Value{}
	}
	b, err := json.Marshal(vs)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(d.out, "%s: %s\n", label, b)
	return err
}

func scalarNode(v seq.Value) *yaml.Node {
	tag := "!!str"
	switch v.Kind() {
	case seq.KindInt:
		tag = "!!int"
	case seq.KindFloat:
		tag = "!!float"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.String()}
}

func newRootCmd() *cobra.Command {
	var asYAML bool

	root := &cobra.Command{
		Use:           "linqdemo",
		Short:         "Lazy filters over in-memory collections",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(dumper{out: cmd.OutOrStdout(), asYAML: asYAML})
		},
	}
	root.PersistentFlags().BoolVar(&asYAML, "yaml", false, "print results as YAML")

	d := func(cmd *cobra.Command) dumper { return dumper{out: cmd.OutOrStdout(), asYAML: asYAML} }

	root.AddCommand(
		&cobra.Command{
			Use:   "demo",
			Short: "Run the filtering walkthrough",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return runDemo(d(cmd)) },
		},
		newAboveCmd(d),
		newOfTypeCmd(d),
		newPartitionCmd(d, "take", "Keep the first n elements", seq.Take[seq.Value]),
		newPartitionCmd(d, "skip", "Drop the first n elements", seq.Skip[seq.Value]),
	)
	return root
}

// runDemo reproduz o roteiro: Where(n > 3) e OfType<int>/OfType<string>.
func runDemo(d dumper) error {
	numbers := []seq.Value{seq.Int(1), seq.Int(2), seq.Int(3), seq.Int(4), seq.Int(5)}
	objects := []seq.Value{seq.Int(1), seq.Text("two"), seq.Float(3.0), seq.Int(4), seq.Text("five")}

	var above []seq.Value
	for n := range seq.Above(seq.Ints(slices.Values(numbers)), 3) {
		above = append(above, seq.Int(n))
	}
	if err := d.dump("numbers.Where(n > 3)", above); err != nil {
		return err
	}
	if err := d.dump("objects.OfType(int)", slices.Collect(seq.OfKind(slices.Values(objects), seq.KindInt))); err != nil {
		return err
	}
	return d.dump("objects.OfType(text)", slices.Collect(seq.OfKind(slices.Values(objects), seq.KindText)))
}

func newAboveCmd(d func(*cobra.Command) dumper) *cobra.Command {
	var than string

	cmd := &cobra.Command{
		Use:   "above [numbers...]",
		Short: "Keep numbers strictly greater than --than",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			threshold, err := parseNumbers([]string{than})
			if err != nil {
				return fmt.Errorf("--than: %w", err)
			}
			if len(threshold) != 1 {
				return fmt.Errorf("--than: want a single number, got %q", than)
			}
			values, err := parseNumbers(args)
			if err != nil {
				return err
			}
			kept := slices.Collect(seq.Where(slices.Values(values), func(v seq.Value) bool {
				return greater(v, threshold[0])
			}))
			return d(cmd).dump("above "+threshold[0].String(), kept)
		},
	}
	cmd.Flags().StringVar(&than, "than", "0", "threshold (strict)")
	return cmd
}

func newOfTypeCmd(d func(*cobra.Command) dumper) *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "oftype [json-array]",
		Short: "Keep elements whose literal kind is --kind (int, float, text)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := seq.ParseKind(kindName)
			if err != nil {
				return err
			}
			values, err := readValues(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return d(cmd).dump("oftype "+kind.String(), slices.Collect(seq.OfKind(slices.Values(values), kind)))
		},
	}
	cmd.Flags().StringVar(&kindName, "kind", "int", "element kind")
	return cmd
}

func newPartitionCmd(d func(*cobra.Command) dumper, name, short string, op func(iter.Seq[seq.Value], int) iter.Seq[seq.Value]) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   name + " [json-array]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := readValues(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return d(cmd).dump(name+" "+strconv.Itoa(n), slices.Collect(op(slices.Values(values), n)))
		},
	}
	cmd.Flags().IntVarP(&n, "n", "n", 1, "element count")
	return cmd
}

// readValues lê o array JSON do argumento, ou da entrada padrão sem argumento (ou "-").
func readValues(stdin io.Reader, args []string) ([]seq.Value, error) {
	var raw []byte
	if len(args) == 1 && args[0] != "-" {
		raw = []byte(args[0])
	} else {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	values, err := seq.ParseValues(raw)
	if err != nil {
		return nil, fmt.Errorf("parse values: %w", err)
	}
	return values, nil
}

func parseNumbers(args []string) ([]seq.Value, error) {
	if len(args) == 0 {
		return nil, nil
	}
	values, err := seq.ParseValues([]byte("[" + strings.Join(args, ",") + "]"))
	if err != nil {
		return nil, fmt.Errorf("parse numbers: %w", err)
	}
	for _, v := range values {
		if v.Kind() == seq.KindText {
			return nil, fmt.Errorf("parse numbers: %q is not a number", v.String())
		}
	}
	return values, nil
}

// greater compara a > b sem passar inteiros por float64: acima de 2^53 isso
// perderia precisão. NaN nunca é maior nem menor.
func greater(a, b seq.Value) bool {
	ai, aInt := a.Int()
	bi, bInt := b.Int()
	if aInt && bInt {
		return ai > bi
	}
	af, aFloat := a.Float()
	bf, bFloat := b.Float()
	if aFloat && bFloat {
		return af > bf
	}
	if aInt && bFloat {
		return !math.IsNaN(bf) && new(big.Float).SetInt64(ai).Cmp(big.NewFloat(bf)) > 0
	}
	if aFloat && bInt {
		return !math.IsNaN(af) && big.NewFloat(af).Cmp(new(big.Float).SetInt64(bi)) > 0
	}
	return false
}

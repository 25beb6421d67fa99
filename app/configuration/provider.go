package configuration

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/spf13/pflag"

	"github.com/gamehive/observer/ierrors"
)

// lowerPosflag is a koanf provider for a pflag.FlagSet that lower-cases all flag names and unflattens them at delim,
// so "level.gainAmount" ends up as {level: {gainamount: ...}}.
//
// Flags that were set on the command line always win. Unchanged flags only contribute their default value if ko does
// not know the key yet, so defaults never override values loaded from other sources.
type lowerPosflag struct {
	delim   string
	flagSet *pflag.FlagSet
	ko      *koanf.Koanf
}

// NewUnsortedFlagSet creates a FlagSet that prints its flags in the order they were defined.
func NewUnsortedFlagSet(name string, errorHandling pflag.ErrorHandling) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, errorHandling)
	flagSet.SortFlags = false

	return flagSet
}

func lowerPosflagProvider(flagSet *pflag.FlagSet, delim string, ko *koanf.Koanf) *lowerPosflag {
	return &lowerPosflag{
		delim:   delim,
		flagSet: flagSet,
		ko:      ko,
	}
}

// Read returns the nested config map of the flag set.
func (p *lowerPosflag) Read() (map[string]interface{}, error) {
	values := make(map[string]interface{})
	p.flagSet.VisitAll(func(f *pflag.Flag) {
		key := strings.ToLower(f.Name)
		if !f.Changed && (p.ko == nil || p.ko.Exists(key)) {
			return
		}

		values[key] = posflag.FlagVal(p.flagSet, f)
	})

	return maps.Unflatten(values, p.delim), nil
}

// ReadBytes is not supported.
func (p *lowerPosflag) ReadBytes() ([]byte, error) {
	return nil, ierrors.New("pflag provider does not support this method")
}

// Watch is not supported.
func (p *lowerPosflag) Watch(func(event interface{}, err error)) error {
	return ierrors.New("pflag provider does not support this method")
}

package internal

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Unit is one vm source file of a program.
type Unit struct {
	Module string
	Source string
}

const sysModule = "Sys"

// TranslateProgram translates every unit and joins the results in the given
// order, behind the bootstrap code when the config asks for it. Units are
// translated concurrently; the first failure cancels the rest and nothing is
// returned.
func (translator *Translator) TranslateProgram(ctx context.Context, units []Unit) (string, error) {
	seen := make(map[string]bool, len(units))
	for _, unit := range units {
		if seen[unit.Module] {
			return "", fmt.Errorf("%w: %s", ErrDuplicateModule, unit.Module)
		}
		seen[unit.Module] = true
	}
	results := make([]Fragment, len(units))
	group, ctx := errgroup.WithContext(ctx)
	if translator.config.Parallel > 0 {
		group.SetLimit(translator.config.Parallel)
	}
	for i, unit := range units {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fragment, err := translator.translateModule(unit.Module, unit.Source)
			if err != nil {
				return err
			}
			results[i] = fragment
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return "", err
	}
	var builder strings.Builder
	if translator.needBootstrap(seen) {
		translator.logger.Info("write bootstrap code", "entry", bootstrapEntryPoint)
		if translator.config.Comments {
			builder.WriteString(Comment("bootstrap").String() + "\n")
		}
		bootstrap, err := Bootstrap()
		if err != nil {
			return "", err
		}
		builder.WriteString(bootstrap.String())
	}
	for _, fragment := range results {
		builder.WriteString(fragment.String())
	}
	return builder.String(), nil
}

func (translator *Translator) needBootstrap(modules map[string]bool) bool {
	switch translator.config.Bootstrap {
	case BootstrapAlways:
		return true
	case BootstrapNever:
		return false
	default:
		return modules[sysModule]
	}
}

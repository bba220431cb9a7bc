package commands

import (
	"context"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/worldsync/pkg/app"
	"tableflip.dev/worldsync/pkg/commands/options"
	"tableflip.dev/worldsync/pkg/filter"
	"tableflip.dev/worldsync/pkg/navigation"
	"tableflip.dev/worldsync/pkg/store"
)

// loadService reads the config and opens the store and catalog it names.
func loadService() (store.Config, *app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := filter.LoadCatalog(cfg.CatalogPath())
	if err != nil {
		return nil, nil, err
	}
	return cfg, &app.Service{Persistence: p, Catalog: catalog}, nil
}

// viewState combines --view (or the configured default) with --on.
func viewState(cfg store.Config, vo *options.ViewOptions, on *options.OnOptions) (navigation.ViewState, error) {
	view := vo.View
	if view == "" {
		view = cfg.DefaultView()
	}
	mode, err := navigation.ParseMode(view)
	if err != nil {
		return navigation.ViewState{}, err
	}
	current, err := on.GetOn()
	if err != nil {
		return navigation.ViewState{}, err
	}
	return navigation.ViewState{Mode: mode, Current: current}, nil
}

func eventCompletions(toComplete string) []string {
	_, svc, err := loadService()
	if err != nil {
		return nil
	}
	all, err := svc.Events(context.Background())
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(all))
	for _, e := range all {
		if strings.HasPrefix(e.ID, toComplete) {
			ids = append(ids, e.ID+"\t"+e.Name)
		}
	}
	sort.Strings(ids)
	return ids
}

func catalogCompletions(cat filter.Category) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		catalog := filter.DefaultCatalog()
		if _, svc, err := loadService(); err == nil {
			catalog = svc.CatalogOrDefault()
		}
		var ids []string
		for _, o := range catalog.Options(cat) {
			if strings.HasPrefix(o.ID, toComplete) {
				ids = append(ids, o.ID+"\t"+o.Name)
			}
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	}
}

// addFilterArgs registers the filter flags with catalog completion.
func addFilterArgs(cmd *cobra.Command, fo *options.FilterOptions) {
	options.AddFilterArgs(cmd, fo)
	_ = cmd.RegisterFlagCompletionFunc("country", catalogCompletions(filter.Countries))
	_ = cmd.RegisterFlagCompletionFunc("religion", catalogCompletions(filter.Religions))
	_ = cmd.RegisterFlagCompletionFunc("type", catalogCompletions(filter.EventTypes))
}

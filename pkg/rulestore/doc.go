// Package rulestore loads named rule declarations and keeps the current set
// of forms.
//
// A Source yields one Document per form: DirSource reads a directory of YAML
// or JSON files (the form name is the file name without extension) and
// PostgresSource reads the form_rules table. The Registry parses every
// document with rules.Parse, normalizes it and swaps the whole collection in
// atomically; a reload that fails leaves the previous collection in effect.
//
//	reg := rulestore.NewRegistry(rulestore.NewDirSource(os.DirFS(dir), "."),
//		rulestore.WithParseOptions(rules.WithFuncs(funcs)),
//		rulestore.WithLogger(log),
//	)
//	reg.OnReload(manager.Apply)
//	if err := reg.Reload(ctx); err != nil {
//		return err
//	}
//	go reg.Run(ctx, time.Minute)
package rulestore

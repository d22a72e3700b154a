// Package generator runs the provisioning pipeline end to end.
//
// A run parses the template, reads the subscriber line file, groups the
// lines, sizes and allocates devices for each group, renders one
// configuration per device, writes the files and reports the outcome:
//
//	gen := generator.New(logger, writer, generator.WithSink(sink))
//	result, err := gen.Run(ctx, generator.Request{
//	    InputPath:    "lines.csv",
//	    TemplatePath: "ht8xx.xml",
//	    OutputDir:    "out",
//	})
//
// Nothing is written until every configuration has rendered, so a broken
// template or a strict-mode token error leaves the output directory
// untouched.
//
// Plan performs the grouping and sizing steps only.
package generator

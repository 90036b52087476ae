package cli

import "strings"

// ExpandDefineArgs rewrites every short definition form ("-DNAME=VALUE", "-D=NAME",
// "-D NAME") into "--define=NAME" so the flag parser only ever sees one spelling of
// the flag and can mix them freely. Arguments after "--" are left untouched.
func ExpandDefineArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if i == 0 {
			out = append(out, arg)
			continue
		}
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		switch {
		case arg == "-D":
			// A trailing -D is left for the parser to report.
			if i+1 < len(args) {
				i++
				arg = "--define=" + args[i]
			}
		case strings.HasPrefix(arg, "-D="):
			arg = "--define=" + strings.TrimPrefix(arg, "-D=")
		case strings.HasPrefix(arg, "-D"):
			arg = "--define=" + strings.TrimPrefix(arg, "-D")
		}
		out = append(out, arg)
	}
	return out
}

package recast

import "github.com/recastlab/recast/schema"

// binding is one resolved generic argument: the node to decode against, the
// module it was written in, and the environment it must be interpreted
// under (the argument may itself mention the caller's type variables).
type binding struct {
	module string
	node   schema.Node
	env    typeEnv
}

// typeEnv maps generic parameter tokens to bindings. It is rebuilt per
// named-type instantiation and never mutated afterwards.
type typeEnv map[string]binding

// bindParams zips declared parameter tokens against supplied arguments,
// resolving each argument in the caller's environment first. A top-level
// variable argument is dereferenced at bind time.
func bindParams(path string, params []string, args []schema.Node, module string, caller typeEnv) (typeEnv, error) {
	if len(params) != len(args) {
		return nil, Issues{IssueAt(path, CodeTypeArity, map[string]any{
			"declared": len(params), "supplied": len(args),
		})}
	}
	if len(params) == 0 {
		return nil, nil
	}
	env := make(typeEnv, len(params))
	for i, tok := range params {
		if v, ok := args[i].(schema.VarType); ok {
			b, ok := caller[v.Token]
			if !ok {
				return nil, Issues{IssueAt(path, CodeUnboundTypeVar, map[string]any{"token": v.Token})}
			}
			env[tok] = b
			continue
		}
		env[tok] = binding{module: module, node: args[i], env: caller}
	}
	return env, nil
}

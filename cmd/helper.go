package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	units "github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/xapi-project/xenops-cli/types"
)

// commandContext returns the signal-aware context installed by Execute,
// falling back to Background for commands run outside it (tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// refArg converts the optional positional into a VM reference. An absent or
// blank value is an argument error resolved here, before any RPC.
func refArg(args []string) (types.VMRef, error) {
	if len(args) == 0 {
		return types.VMRef{}, usageErrorf("missing VM reference (name or UUID)")
	}
	ref, err := types.ParseVMRef(args[0])
	if err != nil {
		return types.VMRef{}, usageErrorf("invalid VM reference: %v", err)
	}
	return ref, nil
}

// printVMTable renders VM summaries in the order given, daemon order
// preserved.
func printVMTable(vms []*types.VM) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tSTATE\tVCPUS\tMEMORY")
	for _, vm := range vms {
		mem := "-"
		if vm.Memory > 0 {
			mem = units.BytesSize(float64(vm.Memory))
		}
		vcpus := "-"
		if vm.VCPUs > 0 {
			vcpus = fmt.Sprintf("%d", vm.VCPUs)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", vm.ID, vm.Name, vm.PowerState, vcpus, mem)
	}
	w.Flush() //nolint:errcheck,gosec
}

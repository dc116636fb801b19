package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"treeprobe/internal/config"
	"treeprobe/internal/detect"
	"treeprobe/internal/fetcher"
	"treeprobe/internal/osdict"
)

var (
	detectArch  string
	detectType  string
	detectOS    string
	pullKernel  bool
	pullBootISO bool
)

var detectCmd = &cobra.Command{
	Use:   "detect LOCATION",
	Short: "Identify the distribution of an install tree",
	Long: `Identify which OS distribution an install tree contains and which
kernel/initrd and boot ISO paths boot its installer. LOCATION is the
root of the tree: an HTTP(S) URL of a mirror directory, or a local
path such as a mounted ISO.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		scratch, err := cfg.ScratchDir()
		if err != nil {
			return err
		}

		f, err := fetcher.New(args[0], scratch)
		if err != nil {
			return err
		}

		// The hint may be a catalog identifier like "fedora21" or a
		// bare family id like "fedora"; both prioritize the family.
		hint := detectOS
		if entry, ok := osdict.Lookup(detectOS); ok && entry.Distro != "" {
			hint = entry.Distro
		}

		d, err := detect.Detect(f, detectArch, detectType, hint)
		if err != nil {
			return err
		}

		color.Green("✔ Detected %s", d.PrettyName())
		printDistro(d)

		if pullKernel {
			k, err := d.AcquireKernel()
			if err != nil {
				return err
			}
			color.Green("✔ Kernel:  %s", k.KernelPath)
			color.Green("✔ Initrd:  %s", k.InitrdPath)
			if k.Args != "" {
				fmt.Printf("  kernel args: %s\n", k.Args)
			}
		}
		if pullBootISO {
			iso, err := d.AcquireBootISO()
			if err != nil {
				return err
			}
			color.Green("✔ Boot ISO: %s", iso)
		}
		return nil
	},
}

func printDistro(d detect.Distro) {
	variant := d.OSVariant()
	if variant == "" {
		variant = "(unknown)"
	}
	fmt.Printf("  os-variant: %s\n", variant)
	if d.Arch() != "" {
		fmt.Printf("  arch:       %s\n", d.Arch())
	}
	if d.KernelURLArg() != "" {
		fmt.Printf("  kernel arg: %s\n", d.KernelURLArg())
	}
	for _, pair := range d.KernelPaths() {
		fmt.Printf("  candidate:  %s + %s\n", pair.Kernel, pair.Initrd)
	}
	for _, iso := range d.BootISOPaths() {
		fmt.Printf("  boot iso:   %s\n", iso)
	}
}

func init() {
	detectCmd.Flags().StringVar(&detectArch, "arch", "x86_64", "guest architecture")
	detectCmd.Flags().StringVar(&detectType, "type", detect.GuestTypeHVM,
		"guest type (hvm or xen)")
	detectCmd.Flags().StringVar(&detectOS, "os", "",
		"os-variant or distro id hint to prioritize")
	detectCmd.Flags().BoolVar(&pullKernel, "kernel", false,
		"download the kernel/initrd pair after detection")
	detectCmd.Flags().BoolVar(&pullBootISO, "boot-iso", false,
		"download the boot ISO after detection")
	rootCmd.AddCommand(detectCmd)
}

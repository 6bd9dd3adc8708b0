package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-fdm/fdm/bank"
	"github.com/cwbudde/algo-fdm/fdm/pipeline"
)

type infoCmd struct {
	Rate int `default:"44100" help:"Baseband sample rate to evaluate slot responses at."`
}

// Run prints the fixed slot and carrier layout together with the realized
// filter response at each band edge.
func (c *infoCmd) Run() error {
	cfg := pipeline.DefaultConfig()
	cfg.TargetRate = c.Rate

	fb, err := bank.New(cfg.Slots, cfg.TargetRate)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Slot\tFilter\tBand [Hz]\tEdge [dB]\tCarrier [Hz]\tOccupied [Hz]\tRecovery LP [Hz]")
	for i, s := range cfg.Slots {
		low, high := cfg.Plan.Carriers[i].Band()
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.0f\t%.0f-%.0f\t%.0f\n",
			i, s.Kind, slotBand(s), slotEdgeDB(fb, i, s),
			cfg.Plan.Carriers[i].FreqHz, low, high, cfg.Plan.Carriers[i].RecoveryCutoffHz)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbaseband rate %d Hz, working rate %d Hz (Nyquist %d Hz)\n",
		cfg.TargetRate, cfg.Plan.WorkingRate, cfg.Plan.WorkingRate/2)

	return nil
}

func slotBand(s bank.SlotSpec) string {
	switch s.Kind {
	case bank.KindLowPass:
		return fmt.Sprintf("0-%.0f", s.HighHz)
	case bank.KindBandPass:
		return fmt.Sprintf("%.0f-%.0f", s.LowHz, s.HighHz)
	default:
		return fmt.Sprintf("%.0f+", s.LowHz)
	}
}

func slotEdgeDB(b *bank.Bank, slot int, s bank.SlotSpec) string {
	switch s.Kind {
	case bank.KindLowPass:
		return fmt.Sprintf("%.2f", b.Response(slot, s.HighHz))
	case bank.KindBandPass:
		return fmt.Sprintf("%.2f / %.2f", b.Response(slot, s.LowHz), b.Response(slot, s.HighHz))
	default:
		return fmt.Sprintf("%.2f", b.Response(slot, s.LowHz))
	}
}

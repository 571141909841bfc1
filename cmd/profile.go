package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/JaimeV365/job-seeker-cheater/internal/store"

	"github.com/spf13/cobra"
)

const defaultProfileFile = "profile.json"

var profileFile string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect or remove the locally stored profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored profile and preferences",
	Run: func(_ *cobra.Command, _ []string) {
		s := store.NewProfileStore(profileFile)
		if !s.IsPersisted() {
			fmt.Printf("no stored profile at %s\n", profileFile)
			return
		}

		prof, preferences, err := s.Load()
		if err != nil {
			log.Fatalf("loading the stored profile: %v", err)
		}

		fmt.Printf("Skills: %s\n", strings.Join(prof.Skills, ", "))
		if prof.YearsExperience != nil {
			fmt.Printf("Years of experience: %.0f\n", *prof.YearsExperience)
		}
		fmt.Printf("Role hints: %s\n", strings.Join(prof.RoleHints, ", "))
		fmt.Printf("Summary: %s\n", prof.Summary)
		fmt.Printf("Remote types: %s\n", strings.Join(preferences.RemoteTypes, ", "))
		fmt.Printf("Locations: %s\n", strings.Join(preferences.Locations, ", "))
	},
}

var profileExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the raw stored data to stdout",
	Run: func(_ *cobra.Command, _ []string) {
		s := store.NewProfileStore(profileFile)
		if !s.IsPersisted() {
			fmt.Printf("no stored profile at %s\n", profileFile)
			return
		}
		if err := s.Export(os.Stdout); err != nil {
			log.Fatalf("exporting the stored profile: %v", err)
		}
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete everything stored about you",
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.NewProfileStore(profileFile).DeleteAll(); err != nil {
			log.Fatalf("deleting the stored profile: %v", err)
		}
		fmt.Printf("removed %s\n", profileFile)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)

	profileCmd.PersistentFlags().StringVar(&profileFile, "file", defaultProfileFile, "path of the stored profile")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileExportCmd)
	profileCmd.AddCommand(profileDeleteCmd)
}

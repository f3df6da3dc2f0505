package main

import (
	"fmt"
	"runtime"
	"strings"

	selfupdate "github.com/gwillem/go-selfupdate"
)

type updateArg struct {
	URL string `long:"url" env:"SPLITMERGE_UPDATE_URL" required:"yes" description:"Download URL of the splitmerge binary; {os} and {arch} are substituted"`
}

var updateCmd updateArg

// Execute replaces the running binary when the download is newer. A
// successful update re-executes the same command line, so the restarted
// process is the one that reports the new version.
func (u *updateArg) Execute(_ []string) error {
	applyVerbose()

	url := releaseURL(u.URL)
	log.Infof("checking for updates at %s", url)
	restarted, err := selfupdate.UpdateRestart(url)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	if restarted {
		fmt.Println(green("Updated to"), boldwhite(splitmergeVersion))
		return nil
	}
	fmt.Println("Already running latest version", splitmergeVersion)
	return nil
}

func releaseURL(tmpl string) string {
	return strings.NewReplacer("{os}", runtime.GOOS, "{arch}", runtime.GOARCH).Replace(tmpl)
}

func init() {
	cli.AddCommand("update", "Update splitmerge binary", "Download and install the latest splitmerge binary", &updateCmd)
}

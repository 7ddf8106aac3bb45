package portal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
)

// NoData is returned instead of a file path when the portal reports that
// no new mutations are available.
const NoData = "NO_DATA"

// DownloadExpenseCSV logs into the clinic's bank portal with a visible
// browser and downloads the expense mutation CSV for manual import. The
// portal has no export API, so this walks the same pages a human would.
func DownloadExpenseCSV(portalURL, userID, password, saveDir string) (string, error) {
	if _, err := os.Stat(saveDir); os.IsNotExist(err) {
		if err := os.MkdirAll(saveDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create download folder: %w", err)
		}
	}

	// Leakless(false) keeps antivirus software from flagging the helper
	// binary on the clinic's front-desk machines.
	u := launcher.New().
		Headless(false).
		Leakless(false).
		MustLaunch()

	browser := rod.New().ControlURL(u).MustConnect()
	defer browser.MustClose()

	page := browser.MustPage(portalURL)
	page.MustWaitStable()

	if err := rod.Try(func() {
		page.MustElement("[name='userid']").MustInput(userID)
	}); err != nil {
		return "", fmt.Errorf("user id field not found: %w", err)
	}
	if err := rod.Try(func() {
		page.MustElement("[name='password']").MustInput(password)
	}); err != nil {
		return "", fmt.Errorf("password field not found: %w", err)
	}

	loginBtn, err := page.ElementR("input, button, a", "Masuk|Login")
	if err == nil {
		loginBtn.MustClick()
	} else {
		page.KeyActions().Press(input.Enter).MustDo()
	}
	page.MustWaitStable()

	if err := rod.Try(func() {
		page.MustElementR("a, span, div", "Mutasi Rekening").MustClick()
	}); err != nil {
		return "", fmt.Errorf("account mutation menu not found (login may have failed): %w", err)
	}
	page.MustWaitStable()

	wait := browser.MustWaitDownload()
	go page.MustHandleDialog()

	clicked := false
	for _, sel := range []string{"input[value*='CSV']", "input[type='button']", "button"} {
		if el, err := page.ElementR(sel, "Unduh|Download|CSV"); err == nil {
			el.MustClick()
			clicked = true
			break
		}
	}
	if !clicked {
		return "", fmt.Errorf("CSV download button not found")
	}

	var fileData []byte
	resultChan := make(chan string)

	go func() {
		defer func() { _ = recover() }()
		fileData = wait()
		resultChan <- "downloaded"
	}()
	go func() {
		// The portal swaps in an inline message instead of a download when
		// there is nothing new. Give it 30 seconds.
		for i := 0; i < 60; i++ {
			time.Sleep(500 * time.Millisecond)
			if body, err := page.Element("body"); err == nil {
				text, _ := body.Text()
				if strings.Contains(text, "tidak ada mutasi") {
					resultChan <- "no_data"
					return
				}
			}
		}
	}()

	select {
	case res := <-resultChan:
		if res == "no_data" {
			return NoData, nil
		}
	case <-time.After(60 * time.Second):
		return "", fmt.Errorf("timed out waiting for the portal download")
	}

	if len(fileData) == 0 {
		return "", fmt.Errorf("portal download was empty")
	}

	path := filepath.Join(saveDir, fmt.Sprintf("mutasi_%s.csv", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, fileData, 0644); err != nil {
		return "", fmt.Errorf("failed to save downloaded CSV: %w", err)
	}
	return path, nil
}

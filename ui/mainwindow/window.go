// Package mainwindow provides the main application window.
package mainwindow

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"vault-tracer/internal/app"
	"vault-tracer/internal/backend"
	"vault-tracer/internal/projection"
	"vault-tracer/internal/roi"
	"vault-tracer/internal/version"
	"vault-tracer/ui/canvas"
	"vault-tracer/ui/panels"
	"vault-tracer/ui/prefs"
)

const (
	prefKeyBackendURL   = "backendURL"
	prefKeyLastProject  = "lastProject"
	prefKeyWindowWidth  = "windowWidth"
	prefKeyWindowHeight = "windowHeight"
)

// previewMaxDim bounds the projection preview shown on the surface.
const previewMaxDim = 1600

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	surface   *canvas.EditorSurface
	roiPanel  *panels.ROIPanel
	statusBar *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Vault Tracer")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	width := float32(appPrefs.Float(prefKeyWindowWidth))
	height := float32(appPrefs.Float(prefKeyWindowHeight))
	if width < 400 || height < 300 {
		width, height = 1200, 800
	}
	win.Resize(fyne.NewSize(width, height))
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.surface = canvas.NewEditorSurface()
	mw.roiPanel = panels.NewROIPanel(mw.state)
	mw.statusBar = widget.NewLabel("Ready")

	// Gesture edits flow into the shared state; the panel listens there.
	mw.surface.OnROIChanged(func(s roi.State) {
		mw.state.SetROI(s)
	})
	mw.surface.OnModeChanged(mw.roiPanel.SetMode)
	mw.roiPanel.OnSave(mw.onSaveROI)
	mw.roiPanel.OnReset(func() {
		mw.surface.ResetSelection()
		mw.setStatus("Selection reset")
	})

	split := container.NewHSplit(
		mw.roiPanel.Widget(),
		mw.surface,
	)
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil,
		nil,
		split,
	)
	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Project...", mw.onOpenProject),
		fyne.NewMenuItem("Save Project", mw.onSaveProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Projection Image...", mw.onOpenProjectionImage),
		fyne.NewMenuItem("Fetch Projection from Backend", mw.onFetchProjection),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	roiMenu := fyne.NewMenu("Selection",
		fyne.NewMenuItem("Save ROI to Backend", mw.onSaveROI),
		fyne.NewMenuItem("Reset Selection", func() { mw.surface.ResetSelection() }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, roiMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventProjectLoaded, func(interface{}) {
		mw.SetTitle("Vault Tracer - " + filepath.Base(mw.state.ProjectPath))
		mw.surface.SetState(mw.state.GetROI())
	})

	mw.state.On(app.EventProjectionLoaded, func(data interface{}) {
		if p, ok := data.(*projection.Projection); ok {
			mw.surface.SetProjection(p.Preview(previewMaxDim))
			mw.setStatus(fmt.Sprintf("Projection %s: %dx%d px", p.ID, p.Width(), p.Height()))
		}
	})

	mw.state.On(app.EventROISaved, func(data interface{}) {
		if result, ok := data.(backend.SaveROIResult); ok {
			mw.roiPanel.ShowSaveResult(result.InsideCount, result.OutsideCount)
			mw.setStatus(fmt.Sprintf("ROI saved: %d segmentations inside, %d outside",
				result.InsideCount, result.OutsideCount))
		}
	})
}

// LoadProject opens a project file and restores its selection.
func (mw *MainWindow) LoadProject(path string) {
	if err := mw.state.LoadProject(path); err != nil {
		log.Printf("Failed to load project %s: %v", path, err)
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.prefs.SetString(prefKeyLastProject, path)
	mw.setStatus("Loaded " + filepath.Base(path))
}

func (mw *MainWindow) onOpenProject() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		mw.LoadProject(path)
	}, mw.Window)
}

func (mw *MainWindow) onSaveProject() {
	path := mw.state.ProjectPath
	if path == "" {
		dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			writer.Close()
			mw.saveProjectTo(path)
		}, mw.Window)
		return
	}
	mw.saveProjectTo(path)
}

func (mw *MainWindow) saveProjectTo(path string) {
	if err := mw.state.SaveProject(path); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.prefs.SetString(prefKeyLastProject, path)
	mw.setStatus("Project saved")
}

func (mw *MainWindow) onOpenProjectionImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		p, err := projection.Load(path)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.state.SetProjection(p)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".tif", ".tiff"}))
	fd.Show()
}

// onFetchProjection downloads the projection image from the backend.
func (mw *MainWindow) onFetchProjection() {
	client, ok := mw.backendClient()
	if !ok {
		return
	}
	projectionID := mw.state.ProjectionID
	if projectionID == "" {
		dialog.ShowInformation("No Projection", "The project does not name a projection to fetch.", mw.Window)
		return
	}

	mw.setStatus("Fetching projection " + projectionID + "...")
	go func() {
		img, err := client.FetchProjectionImage(context.Background(), projectionID)
		if err != nil {
			log.Printf("Projection fetch failed: %v", err)
			mw.setStatus("Projection fetch failed")
			return
		}
		mw.state.SetProjection(projection.New(projectionID, img))
	}()
}

// onSaveROI converts the selection to pixel space and submits it.
func (mw *MainWindow) onSaveROI() {
	client, ok := mw.backendClient()
	if !ok {
		return
	}
	proj := mw.state.Projection
	if proj == nil {
		dialog.ShowInformation("No Projection", "Load a projection image before saving the ROI.", mw.Window)
		return
	}

	region := mw.state.GetROI().ToPixels(float64(proj.Width()), float64(proj.Height()))
	projectID := mw.state.ProjectID

	mw.setStatus("Saving ROI...")
	go func() {
		result, err := client.SaveROI(context.Background(), projectID, region)
		if err != nil {
			log.Printf("Save ROI failed: %v", err)
			mw.roiPanel.ShowSaveError(err)
			mw.setStatus("Save failed")
			return
		}
		mw.state.RecordSave(result)
	}()
}

// backendClient builds a client from the project's backend URL, falling
// back to the preferences.
func (mw *MainWindow) backendClient() (*backend.Client, bool) {
	url := mw.state.BackendURL
	if url == "" {
		url = mw.prefs.String(prefKeyBackendURL)
	}
	if url == "" {
		dialog.ShowInformation("No Backend",
			"No backend URL is configured in the project or preferences.", mw.Window)
		return nil, false
	}
	return backend.NewClient(url), true
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Vault Tracer",
		fmt.Sprintf("Vault Tracer %s\nROI editor for vault scan projections", version.Version),
		mw.Window)
}

func (mw *MainWindow) setStatus(text string) {
	mw.statusBar.SetText(text)
}

// SavePreferences records the window size and flushes preferences to
// disk.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	mw.prefs.SetFloat(prefKeyWindowWidth, float64(size.Width))
	mw.prefs.SetFloat(prefKeyWindowHeight, float64(size.Height))
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

// SavePreferencesIfChanged flushes preferences when dirty.
func (mw *MainWindow) SavePreferencesIfChanged() {
	if err := mw.prefs.SaveIfChanged(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

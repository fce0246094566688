package inquiry

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"inmolista/server/internal/models"
	"inmolista/server/internal/notify"
)

// View identifies one screen of the inquiry workspace.
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewReply
)

func (v View) String() string {
	switch v {
	case ViewList:
		return "list"
	case ViewDetail:
		return "detail"
	case ViewReply:
		return "reply"
	default:
		return "unknown"
	}
}

// transitions is the table of legal view changes.
var transitions = map[View]map[View]bool{
	ViewList:   {ViewDetail: true, ViewReply: true},
	ViewDetail: {ViewReply: true, ViewList: true},
	ViewReply:  {ViewDetail: true, ViewList: true},
}

var (
	ErrEmptyResponse     = errors.New("response text must not be empty")
	ErrIllegalTransition = errors.New("illegal view transition")
)

// pendingTransition is a view change waiting out the animation window.
type pendingTransition struct {
	view       View
	selected   string
	clearDraft bool
}

// Workspace manages the three-view inquiry workflow over an in-memory
// inquiry collection. View changes are applied after a fixed brief delay,
// with Animating true during that window; a second request arriving during
// the delay overwrites the pending target. Closing the workspace cancels
// any pending change and resets to the list view unconditionally.
type Workspace struct {
	logger   *logrus.Logger
	notifier notify.Notifier
	delay    time.Duration

	mu        sync.Mutex
	inquiries []models.Inquiry
	view      View
	selected  string
	draft     string
	animating bool
	pending   *pendingTransition
	timer     *time.Timer

	cfg       FilterConfig
	sortKey   SortKey
	ascending bool
}

func NewWorkspace(inquiries []models.Inquiry, notifier notify.Notifier, logger *logrus.Logger, delay time.Duration) *Workspace {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	owned := make([]models.Inquiry, len(inquiries))
	copy(owned, inquiries)
	return &Workspace{
		logger:    logger,
		notifier:  notifier,
		delay:     delay,
		inquiries: owned,
		view:      ViewList,
		sortKey:   SortRecent,
	}
}

// View returns the committed view.
func (w *Workspace) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.view
}

// Animating reports whether a view change is waiting out its delay window.
func (w *Workspace) Animating() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.animating
}

// Selected returns the inquiry carried by the current view, if any.
func (w *Workspace) Selected() (models.Inquiry, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.findLocked(w.selected)
}

// Draft returns the current response draft text.
func (w *Workspace) Draft() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// SetDraft replaces the response draft text.
func (w *Workspace) SetDraft(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = text
}

// ViewInquiry moves list -> detail carrying the selected inquiry.
func (w *Workspace) ViewInquiry(id string) error {
	return w.transition(ViewDetail, id, false)
}

// ReplyTo moves list -> reply carrying the selected inquiry and clearing
// any draft response text.
func (w *Workspace) ReplyTo(id string) error {
	return w.transition(ViewReply, id, true)
}

// Respond moves detail -> reply for the already selected inquiry.
func (w *Workspace) Respond() error {
	w.mu.Lock()
	id := w.selected
	w.mu.Unlock()
	return w.transition(ViewReply, id, false)
}

// Cancel moves reply -> detail.
func (w *Workspace) Cancel() error {
	w.mu.Lock()
	id := w.selected
	w.mu.Unlock()
	return w.transition(ViewDetail, id, false)
}

// Back returns to the list from either detail or reply.
func (w *Workspace) Back() error {
	return w.transition(ViewList, "", false)
}

func (w *Workspace) transition(target View, selected string, clearDraft bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if target != ViewList && selected != "" {
		if _, ok := w.findLocked(selected); !ok {
			return nil // unknown id, no-op
		}
	}

	if target == w.view {
		return nil
	}
	if !transitions[w.view][target] {
		return ErrIllegalTransition
	}

	p := &pendingTransition{view: target, selected: selected, clearDraft: clearDraft}
	if w.delay <= 0 {
		w.applyLocked(p)
		return nil
	}

	// Overwrite any pending target and restart the window.
	w.pending = p
	w.animating = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.firePending)
	return nil
}

// firePending commits the pending view change when the timer fires.
func (w *Workspace) firePending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == nil {
		return
	}
	w.applyLocked(w.pending)
}

func (w *Workspace) applyLocked(p *pendingTransition) {
	w.view = p.view
	if p.view == ViewList {
		w.selected = ""
	} else {
		w.selected = p.selected
	}
	if p.clearDraft {
		w.draft = ""
	}
	w.pending = nil
	w.animating = false
}

// Close tears the workspace down: any pending transition is discarded and
// the state resets regardless of where in a transition it was interrupted.
func (w *Workspace) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pending = nil
	w.view = ViewList
	w.selected = ""
	w.draft = ""
	w.animating = false
}

// Archive marks the inquiry as archived. The view state never changes.
// Unknown ids are a no-op.
func (w *Workspace) Archive(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := w.indexLocked(id)
	if idx < 0 {
		return
	}

	w.inquiries[idx].Status = models.InquiryArchivada
	w.notifier.Notify(notify.Success, "Consulta archivada")
}

// Delete removes the inquiry from the collection entirely. No undo.
func (w *Workspace) Delete(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	idx := w.indexLocked(id)
	if idx < 0 {
		return
	}

	w.inquiries = append(w.inquiries[:idx], w.inquiries[idx+1:]...)
	w.notifier.Notify(notify.Warning, "Consulta eliminada")
}

// SendResponse validates and records a response to the inquiry: status moves
// to Respondida, the response timestamp is set, and the workspace returns to
// the list view. The text itself is not persisted anywhere.
func (w *Workspace) SendResponse(id, text string) error {
	if strings.TrimSpace(text) == "" {
		w.notifier.Notify(notify.Error, "La respuesta no puede estar vacía")
		return ErrEmptyResponse
	}

	w.mu.Lock()
	idx := w.indexLocked(id)
	if idx < 0 {
		w.mu.Unlock()
		return nil
	}

	now := time.Now()
	w.inquiries[idx].Status = models.InquiryRespondida
	w.inquiries[idx].LastResponse = &now
	w.inquiries[idx].ResponseTimeHours = now.Sub(w.inquiries[idx].CreatedAt).Hours()
	w.draft = ""
	w.mu.Unlock()

	w.notifier.Notify(notify.Success, "Respuesta enviada")
	return w.transition(ViewList, "", false)
}

// SetFilters replaces the filter configuration wholesale.
func (w *Workspace) SetFilters(cfg FilterConfig) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cfg = cfg
}

// SetSort changes the sort key and direction.
func (w *Workspace) SetSort(key SortKey, ascending bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sortKey = key
	w.ascending = ascending
}

// Filtered returns the current filtered, sorted view of the collection.
func (w *Workspace) Filtered() []models.Inquiry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Apply(w.inquiries, w.cfg, w.sortKey, w.ascending)
}

// Stats summarizes the current filtered view.
func (w *Workspace) Stats() models.InquiryStats {
	return Stats(w.Filtered())
}

// Len returns the size of the full inquiry collection.
func (w *Workspace) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.inquiries)
}

func (w *Workspace) indexLocked(id string) int {
	for i := range w.inquiries {
		if w.inquiries[i].ID == id {
			return i
		}
	}
	return -1
}

func (w *Workspace) findLocked(id string) (models.Inquiry, bool) {
	idx := w.indexLocked(id)
	if idx < 0 {
		return models.Inquiry{}, false
	}
	return w.inquiries[idx], true
}

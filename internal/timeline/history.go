package timeline

// DefaultHistoryDepth yapılandırma verilmediğinde kullanılan geri alma derinliği.
const DefaultHistoryDepth = 100

// History segment listesi anlık görüntülerinden oluşan geri al / yinele yığınlarıdır.
// Eşzamanlı kullanım için güvenli değildir; Manager kilidi altında çağrılır.
type History struct {
	undoStack []*SegmentList
	redoStack []*SegmentList
	maxDepth  int
}

// NewHistory yeni bir geçmiş oluşturur. maxDepth <= 0 sınırsız demektir.
func NewHistory(maxDepth int) *History {
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &History{maxDepth: maxDepth}
}

// MaxDepth yapılandırılmış üst sınırı döner (0 = sınırsız).
func (h *History) MaxDepth() int {
	return h.maxDepth
}

// Push durumun kopyasını geri alma yığınına ekler ve yineleme yığınını temizler.
// Sınır aşılırsa en eski kayıt atılır.
func (h *History) Push(state *SegmentList) {
	h.undoStack = append(h.undoStack, state.Clone())
	h.redoStack = nil

	if h.maxDepth > 0 && len(h.undoStack) > h.maxDepth {
		excess := len(h.undoStack) - h.maxDepth
		clear(h.undoStack[:excess])
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo önceki durumu döner ve current'ı yineleme yığınına koyar.
// Yığın boşsa current aynen döner.
func (h *History) Undo(current *SegmentList) *SegmentList {
	if len(h.undoStack) == 0 {
		return current
	}
	prev := h.undoStack[len(h.undoStack)-1]
	h.undoStack[len(h.undoStack)-1] = nil
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, current.Clone())
	return prev
}

// Redo geri alınan durumu döner ve current'ı geri alma yığınına koyar.
// Yığın boşsa current aynen döner.
func (h *History) Redo(current *SegmentList) *SegmentList {
	if len(h.redoStack) == 0 {
		return current
	}
	next := h.redoStack[len(h.redoStack)-1]
	h.redoStack[len(h.redoStack)-1] = nil
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, current.Clone())
	return next
}

// CanUndo geri alınacak durum varsa true döner.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo yinelenecek durum varsa true döner.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoDepth geri alma yığınındaki kayıt sayısı.
func (h *History) UndoDepth() int {
	return len(h.undoStack)
}

// RedoDepth yineleme yığınındaki kayıt sayısı.
func (h *History) RedoDepth() int {
	return len(h.redoStack)
}

// Clear iki yığını da boşaltır.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

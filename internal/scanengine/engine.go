package scanengine

import "github.com/google/uuid"

// Result is the wire-value result of ContinueExecution, matching spec.md
// §6's enumeration exactly.
type Result int

const (
	ResultNone                         Result = 0
	ResultStopAndFinalOnTokenProcessed Result = 1
	ResultBeforeTokenProcessed         Result = 2
	ResultOnThenBeforeTokenProcessed   Result = 3
)

func (r Result) String() string {
	switch r {
	case ResultNone:
		return "None"
	case ResultStopAndFinalOnTokenProcessed:
		return "StopAndFinalOnTokenProcessed"
	case ResultBeforeTokenProcessed:
		return "BeforeTokenProcessed"
	case ResultOnThenBeforeTokenProcessed:
		return "OnThenBeforeTokenProcessed"
	default:
		return "Result(?)"
	}
}

// Engine is the recognition engine described by spec.md §2–§6: one instance
// owns one parse at a time. It is single-threaded and cooperative; callers
// must not mutate its state except through the documented entry points
// (InitString, ContinueExecution, EnterTokenLimit, ExitTokenLimit,
// DisposeDataForNextParse).
type Engine[T comparable] struct {
	ID uuid.UUID

	root   Vocabulary[T]
	limits []Limit[T]
	stack  limitStack[T]
	active *Vocabulary[T]

	text    []T
	textLen int
	pos     int

	justStarted bool

	future futureTable[T]
	build  buildUp[T]

	verifying       bool
	verifyTokens    []*verifyToken[T]
	currentVerify   *verifyToken[T]
	finalizing      bool
	lastVerify      *verifyToken[T]
	toDispose       []*verifyToken[T]
	pendingTriggers []triggerRef
	pendingTriggerStarts []int

	slot emissionSlot[T]
}

// New constructs an Engine over the given configuration. The returned
// engine holds no input until InitString is called.
func New[T comparable](cfg Configuration[T]) *Engine[T] {
	e := &Engine[T]{
		ID:          uuid.New(),
		root:        cfg.Root,
		limits:      cfg.Limits,
		justStarted: true,
	}
	e.active = &e.root
	return e
}

// InitString installs text as the input for the next parse. Working
// buffers (future-token table, build-up, leading/trailing) are reallocated
// only when text is longer than any previously installed input; shorter or
// equal-length input reuses them with their logical length reset to 0 —
// the reallocate-on-growth-only discipline of spec.md §5.
//
// DisposeDataForNextParse is called automatically so a caller who forgets
// to call it between parses still gets correct cleanup.
func (e *Engine[T]) InitString(text []T) {
	e.DisposeDataForNextParse()

	e.text = text
	e.textLen = len(text)
	e.pos = 0
	e.justStarted = true

	e.future.reset(e.textLen)
	e.build.reset(e.textLen)
	e.slot.reset()

	e.verifying = false
	e.verifyTokens = e.verifyTokens[:0]
	e.currentVerify = nil
	e.finalizing = false
	e.lastVerify = nil

	e.stack.reset()
	e.active = &e.root
}

// DisposeDataForNextParse releases cancelled VerifyTokens accumulated
// during the previous parse. Ported from the original's manually-invoked
// cleanup step; this engine also calls it at the top of InitString so it
// is never strictly required, only available for callers that want to
// free the disposal list without starting a new parse.
func (e *Engine[T]) DisposeDataForNextParse() {
	if len(e.toDispose) != 0 {
		e.toDispose = e.toDispose[:0]
	}
}

// EnterTokenLimit pushes the named limit and makes its vocabulary active.
// Reports whether a limit by that name was found; on a miss the active
// vocabulary is unchanged. Already-open FutureTokens for now-out-of-scope
// specs are left untouched — they stay live until they mismatch on their
// own (spec.md §4.6).
func (e *Engine[T]) EnterTokenLimit(name string) bool {
	vocab, ok := e.stack.enter(e.limits, name)
	if !ok {
		return false
	}
	e.active = vocab
	return true
}

// ExitTokenLimit pops the active limit, restoring either the parent limit
// or the root vocabulary. Reports whether there was a limit to pop.
func (e *Engine[T]) ExitTokenLimit() bool {
	vocab, ok := e.stack.exit()
	if !ok {
		return false
	}
	if vocab == nil {
		e.active = &e.root
	} else {
		e.active = vocab
	}
	return true
}

// LimitDepth reports how many limits are currently entered.
func (e *Engine[T]) LimitDepth() int { return e.stack.depth() }

// ContinueExecution steps the cursor across the input, returning control to
// the caller on each boundary event, per spec.md §4.1.
func (e *Engine[T]) ContinueExecution() Result {
	if e.justStarted {
		e.prepareForParse()
		e.justStarted = false
	}

	if e.finalizing {
		if r := e.finalizeNextVerifyToken(); r != ResultNone {
			return r
		}
	}

	for e.pos < e.textLen {
		ch := e.text[e.pos]
		r := e.processChar(ch)
		e.pos++
		if r != ResultNone {
			return r
		}
	}

	if e.slot.before != nil {
		e.prepareLeadingAndTrailingFinal(e.build.slice())
	}

	e.stack.reset()
	e.active = &e.root
	e.justStarted = true

	return ResultStopAndFinalOnTokenProcessed
}

func (e *Engine[T]) prepareForParse() {
	e.pos = 0
	e.slot.reset()
}

// processChar implements spec.md §4.2, phases (a)-(f).
func (e *Engine[T]) processChar(ch T) Result {
	e.updateFutureTokens(ch)
	e.addNewFutureTokens(ch)

	if r := e.processFinishedTokens(ch); r != ResultNone {
		return r
	}

	if e.finalizing {
		if r := e.finalizeNextVerifyToken(); r != ResultNone {
			return r
		}
	}

	e.appendCharToBuildUp(ch)
	return ResultNone
}

// updateFutureTokens is phase (a): extend every live candidate in
// [head, tail) by ch, finishing or disabling it; advance head past a row
// that has no undisabled candidate left.
func (e *Engine[T]) updateFutureTokens(ch T) {
	headStillAlive := false
	for i := e.future.head; i < e.future.tail; i++ {
		row := e.future.rows[i]
		rowHasNonDisabled := false
		for j := range row {
			entry := &row[j]
			if entry.status == statusDisabled {
				continue
			}
			rowHasNonDisabled = true
			if entry.status == statusFinished {
				// Already resolved; a finished FutureToken never matches
				// further characters. The original continues matching
				// past the end of TokenContents here, relying on the
				// backing storage's trailing terminator to force a
				// mismatch on the next character — skipping outright is
				// the safe Go equivalent (see DESIGN.md).
				continue
			}
			k := e.pos - i
			if k < len(entry.spec.Elements) && entry.spec.Elements[k] == ch {
				if k+1 == len(entry.spec.Elements) {
					entry.status = statusFinished
				}
			} else {
				e.disableFuture(futureRef{row: i, col: j})
			}
		}
		if i == e.future.head {
			headStillAlive = rowHasNonDisabled
		}
	}
	if !headStillAlive && e.future.head < e.future.tail {
		e.future.head++
	}
}

// addNewFutureTokens is phase (b): open a new candidate for every
// multi-element spec in the active vocabulary whose first element is ch.
func (e *Engine[T]) addNewFutureTokens(ch T) {
	e.future.openRow(e.pos)
	for i := range e.active.Multis {
		spec := &e.active.Multis[i]
		if spec.Elements[0] == ch {
			e.future.addCandidate(e.pos, *spec)
		}
	}
}

// processFinishedTokens is phases (c)-(d): resolve multi-element
// candidates that just finished, then single-element tokens matching ch.
func (e *Engine[T]) processFinishedTokens(ch T) Result {
	for i := e.future.head; i < e.future.tail; i++ {
		row := e.future.rows[i]
		for j := range row {
			entry := &row[j]
			if entry.status != statusFinished {
				continue
			}

			ref := futureRef{row: i, col: j}

			if e.verifying {
				outcome := e.checkFinishedFutureToken(ref, i)
				if outcome.matched {
					if outcome.shortCircuit {
						return ResultNone
					}
					return outcome.result
				}
			}

			if e.prepareMultiForVerification(ref, i) {
				vt := e.newVerifyTokenFromPending(resolvedFromSpec(entry.spec), i)
				e.disableFuture(ref)
				e.startVerify(vt)
			} else {
				e.disableFuture(ref)
				e.disableTiedSiblings(i, j)
				return e.finalizeDirect(resolvedFromSpec(entry.spec), i, true)
			}
		}
	}

	for i := range e.active.Singles {
		spec := &e.active.Singles[i]
		if spec.Element != ch {
			continue
		}
		if e.prepareSingleForVerification(ch) {
			vt := e.newVerifyTokenFromPending(resolvedSingle(spec), e.pos)
			e.startVerify(vt)
		} else {
			return e.finalizeDirect(resolvedSingle(spec), e.pos, true)
		}
	}

	return ResultNone
}

// disableTiedSiblings disables every other still-finished candidate
// anchored at the same row as the one just claimed directly. Two or more
// distinct specs of equal length and identical content finish on the
// same character; prepareMultiForVerification only registers a spec as a
// threat to another while that other is still live, so ties never
// register each other as triggers. Declared-order tie-break (spec.md §8
// invariant 4) means only the first one encountered is ever emitted — the
// rest must not resurface on a later character as phantom duplicates.
func (e *Engine[T]) disableTiedSiblings(row, col int) {
	for k, other := range e.future.rows[row] {
		if k == col || other.status != statusFinished {
			continue
		}
		e.disableFuture(futureRef{row: row, col: k})
	}
}

// prepareMultiForVerification implements spec.md §4.3: a finished
// candidate at anchor index must be verified iff some still-live candidate
// anchored at or before it contains it as a sub-sequence aligned at the
// finish position.
func (e *Engine[T]) prepareMultiForVerification(ref futureRef, index int) bool {
	e.pendingTriggers = e.pendingTriggers[:0]
	e.pendingTriggerStarts = e.pendingTriggerStarts[:0]

	entry := e.future.at(ref)
	needsVerify := false
	for i := e.future.head; i <= index; i++ {
		row := e.future.rows[i]
		for j := range row {
			other := &row[j]
			if other.status != statusLive {
				continue
			}
			if len(entry.spec.Elements) > len(other.spec.Elements) {
				continue
			}
			distance := index - i
			if distance+len(entry.spec.Elements) > len(other.spec.Elements) {
				continue
			}
			if !elementsEqual(entry.spec.Elements, other.spec.Elements[distance:distance+len(entry.spec.Elements)]) {
				continue
			}
			e.pendingTriggers = append(e.pendingTriggers, triggerRef{ref: futureRef{row: i, col: j}, valid: true})
			e.pendingTriggerStarts = append(e.pendingTriggerStarts, i)
			needsVerify = true
		}
	}
	return needsVerify
}

// prepareSingleForVerification implements spec.md §4.2(d): a single-
// element token at the cursor must be verified iff some still-live
// multi-element candidate has ch at the offset the cursor is currently at.
func (e *Engine[T]) prepareSingleForVerification(ch T) bool {
	e.pendingTriggers = e.pendingTriggers[:0]
	e.pendingTriggerStarts = e.pendingTriggerStarts[:0]

	needsVerify := false
	for i := e.future.head; i < e.future.tail; i++ {
		row := e.future.rows[i]
		for j := range row {
			entry := &row[j]
			if entry.status != statusLive {
				continue
			}
			offset := e.pos - i
			if offset < 0 || offset >= len(entry.spec.Elements) {
				continue
			}
			if entry.spec.Elements[offset] == ch {
				e.pendingTriggers = append(e.pendingTriggers, triggerRef{ref: futureRef{row: i, col: j}, valid: true})
				e.pendingTriggerStarts = append(e.pendingTriggerStarts, i)
				needsVerify = true
			}
		}
	}
	return needsVerify
}

func (e *Engine[T]) appendCharToBuildUp(ch T) {
	if e.verifying {
		e.currentVerify.trailing.append(ch)
	} else {
		e.build.append(ch)
	}
}

// finalizeDirect finalizes a candidate outside the verify-drain path: the
// build-up content and length both come from the current global build-up.
func (e *Engine[T]) finalizeDirect(candidate resolvedToken[T], anchor int, resetBuildUp bool) Result {
	// Candidates anchored on elements this token consumes overlap it; they
	// are disabled so no element ends up inside two emitted tokens.
	for p := anchor + 1; p < anchor+candidate.length() && p < e.future.tail; p++ {
		for j := range e.future.rows[p] {
			if e.future.rows[p][j].status != statusDisabled {
				e.disableFuture(futureRef{row: p, col: j})
			}
		}
	}
	return e.finalizeCommon(candidate, anchor, e.build.slice(), e.build.length, resetBuildUp)
}

// finalizeFromVerifyDrain finalizes a candidate popped off the drain queue
// in finalizeNextVerifyToken. It reproduces an asymmetry present in the
// original C++: the trailing length always comes from the caller-supplied
// buffer length (useLen — either the global build-up's length, for the
// first drained token, or the previously drained token's trailing length),
// but the bytes actually copied always come from the current global
// build-up, not from whichever buffer useLen was drawn from. See
// DESIGN.md's Open Questions for why this is preserved rather than fixed.
func (e *Engine[T]) finalizeFromVerifyDrain(candidate resolvedToken[T], anchor int, useLen int) Result {
	content := e.build.data
	if useLen > len(content) {
		useLen = len(content)
	}
	return e.finalizeCommon(candidate, anchor, content, useLen, false)
}

func (e *Engine[T]) finalizeCommon(candidate resolvedToken[T], anchor int, buf []T, buflen int, resetBuildUp bool) Result {
	e.prepareLeadingAndTrailing(anchor, buf, buflen, resetBuildUp)
	return e.queueToken(candidate, anchor)
}

// prepareLeadingAndTrailing implements spec.md §4.5 steps 1-4 for a
// non-end-of-input finalization.
func (e *Engine[T]) prepareLeadingAndTrailing(tokenStart int, buf []T, buflen int, resetBuildUp bool) {
	e.slot.leading = append(e.slot.leading[:0], e.slot.trailing...)

	trailingLen := tokenStart
	if e.slot.before != nil {
		trailingLen -= e.slot.before.Start + e.slot.before.Length
	}
	if trailingLen > buflen {
		trailingLen = buflen
	}
	e.slot.trailing = append(e.slot.trailing[:0], buf[:trailingLen]...)

	if resetBuildUp {
		e.build.length = 0
	}
}

// prepareLeadingAndTrailingFinal implements spec.md §4.5 for the
// end-of-input path: the trailing length is simply the whole remaining
// build-up, and the token-start formula (spec.md §9's second Open
// Question — (currentPosition-1)-tokenLength) is irrelevant here because
// this step never recomputes the anchor; BeforeTokenProcessedTokenStart
// keeps the value it was given when the token was originally queued.
func (e *Engine[T]) prepareLeadingAndTrailingFinal(buf []T) {
	e.slot.leading = append(e.slot.leading[:0], e.slot.trailing...)
	e.slot.trailing = append(e.slot.trailing[:0], buf...)
}

func (e *Engine[T]) queueToken(candidate resolvedToken[T], anchor int) Result {
	tok := &Token{ID: candidate.id, Start: anchor, Length: candidate.length()}
	return e.slot.push(tok)
}

// --- Read-only projection (spec.md §6), valid immediately after a
// non-None ContinueExecution return. ---

func (e *Engine[T]) BeforeTokenProcessedToken() *Token      { return e.slot.before }
func (e *Engine[T]) OnTokenProcessedToken() *Token          { return e.slot.onToken }
func (e *Engine[T]) OnTokenProcessedPreviousToken() *Token  { return e.slot.onPrevious }
func (e *Engine[T]) OnTokenProcessedLeading() []T           { return e.slot.leading }
func (e *Engine[T]) OnTokenProcessedTrailing() []T          { return e.slot.trailing }

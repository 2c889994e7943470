package scanengine

// triggerRef is one entry in a VerifyToken's triggers list: a reference to
// a FutureToken table slot, nulled out (valid=false) when that FutureToken
// is disabled or consumed by a chained re-verification.
type triggerRef struct {
	ref   futureRef
	valid bool
}

// verifyToken holds a finished candidate whose identity as the real token
// is contingent on none of its triggers (longer/overlapping still-live
// candidates) surviving.
type verifyToken[T comparable] struct {
	candidate     resolvedToken[T]
	anchor        int
	triggers      []triggerRef
	triggerStarts []int
	trailing      buildUp[T]
}

func (vt *verifyToken[T]) liveTriggerCount() int {
	n := 0
	for _, t := range vt.triggers {
		if t.valid {
			n++
		}
	}
	return n
}

// checkOutcome is the result of checking one finished FutureToken against
// the active VerifyTokens' trigger lists.
type checkOutcome struct {
	matched      bool
	shortCircuit bool
	result       Result
}

// checkDisabledFutureToken implements spec.md §4.4 "On trigger death": null
// out any trigger slot equal to the just-disabled FutureToken; if a
// VerifyToken's trigger slots are now all null, the engine enters
// finalizing-verify-tokens mode (the candidate proved to be the real
// token).
func (e *Engine[T]) checkDisabledFutureToken(ref futureRef) {
	for _, vt := range e.verifyTokens {
		anyRemaining := false
		for i := range vt.triggers {
			if !vt.triggers[i].valid {
				continue
			}
			if vt.triggers[i].ref == ref {
				vt.triggers[i].valid = false
			} else {
				anyRemaining = true
			}
		}
		if !anyRemaining {
			e.finalizing = true
			e.lastVerify = nil
		}
	}
}

// checkFinishedFutureToken implements spec.md §4.4 "On trigger victory". It
// scans active VerifyTokens for one whose triggers include ref (the
// FutureToken that just finished at row index). If found and a sibling
// trigger is strictly longer, the current VerifyToken is cancelled and a
// new one opened around the just-finished trigger with those longer
// siblings as its own triggers (a chained re-verification); the caller
// must treat this as a short-circuit (return Result None, no emission).
// Otherwise the current VerifyToken is cancelled and the just-finished
// trigger is finalized directly, its emission returned.
func (e *Engine[T]) checkFinishedFutureToken(ref futureRef, rowIndex int) checkOutcome {
	for vi := 0; vi < len(e.verifyTokens); vi++ {
		vt := e.verifyTokens[vi]
		for ti, trig := range vt.triggers {
			if !trig.valid || trig.ref != ref {
				continue
			}

			entry := e.future.at(ref)
			thisLen := len(entry.spec.Elements)

			if vt.liveTriggerCount() > 1 {
				e.pendingTriggers = e.pendingTriggers[:0]
				e.pendingTriggerStarts = e.pendingTriggerStarts[:0]
				anyLonger := false
				for tk, other := range vt.triggers {
					if tk == ti || !other.valid {
						continue
					}
					otherEntry := e.future.at(other.ref)
					if len(otherEntry.spec.Elements) > thisLen {
						e.pendingTriggers = append(e.pendingTriggers, other)
						e.pendingTriggerStarts = append(e.pendingTriggerStarts, vt.triggerStarts[tk])
						anyLonger = true
					}
				}
				if anyLonger {
					e.stopVerify(vi)
					nvt := e.newVerifyTokenFromPending(resolvedFromSpec(entry.spec), entry.anchor)
					e.disableFuture(ref)
					e.startVerify(nvt)
					return checkOutcome{matched: true, shortCircuit: true}
				}
			}

			e.stopVerify(vi)
			e.disableFuture(ref)
			res := e.finalizeDirect(resolvedFromSpec(entry.spec), rowIndex, true)
			return checkOutcome{matched: true, result: res}
		}
	}
	return checkOutcome{}
}

// startVerify appends vt to the active VerifyToken list, enters verifying
// mode, and clears the transient trigger-staging buffers.
func (e *Engine[T]) startVerify(vt *verifyToken[T]) {
	e.verifying = true
	e.verifyTokens = append(e.verifyTokens, vt)
	e.currentVerify = vt
	e.pendingTriggers = e.pendingTriggers[:0]
	e.pendingTriggerStarts = e.pendingTriggerStarts[:0]
}

// stopVerify cancels the VerifyToken at index (it was either beaten by a
// trigger or superseded by a chained re-verification) and defers it to the
// disposal list drained by DisposeDataForNextParse.
func (e *Engine[T]) stopVerify(index int) {
	vt := e.verifyTokens[index]
	e.toDispose = append(e.toDispose, vt)
	e.verifyTokens = append(e.verifyTokens[:index], e.verifyTokens[index+1:]...)
	if len(e.verifyTokens) == 0 {
		e.verifying = false
	}
}

// finalizeNextVerifyToken implements spec.md §4.4 "Draining". It pops the
// first VerifyToken (in list order) whose trigger count is 0 and finalizes
// it, one per call. The first drained token takes its trailing length from
// the global buildUp; later ones take it from the previously drained
// token's trailing build-up, while the copied content always comes from
// the global buildUp (see finalizeFromVerifyDrain). When none remain, it leaves finalize-mode,
// shifts buildUp to point past the last drained token's trailing, and
// appends the element that was withheld from the build-up while draining
// was in progress.
func (e *Engine[T]) finalizeNextVerifyToken() Result {
	idx := -1
	for i, vt := range e.verifyTokens {
		if vt.liveTriggerCount() == 0 {
			idx = i
			break
		}
	}

	if idx == -1 {
		e.finalizing = false
		last := e.lastVerify
		e.build.data = append(e.build.data[:0], last.trailing.data[1:last.trailing.length]...)
		e.build.length = last.trailing.length - 1
		e.lastVerify = nil
		for _, vt := range e.verifyTokens {
			e.toDispose = append(e.toDispose, vt)
		}
		e.verifyTokens = e.verifyTokens[:0]
		e.verifying = false
		e.build.append(e.text[e.pos-1])
		return ResultNone
	}

	vt := e.verifyTokens[idx]
	var useLen int
	if e.lastVerify == nil {
		useLen = e.build.length
	} else {
		useLen = e.lastVerify.trailing.length
	}
	result := e.finalizeFromVerifyDrain(vt.candidate, vt.anchor, useLen)
	e.lastVerify = vt
	e.verifyTokens = append(e.verifyTokens[:idx], e.verifyTokens[idx+1:]...)
	return result
}

func (e *Engine[T]) newVerifyTokenFromPending(candidate resolvedToken[T], anchor int) *verifyToken[T] {
	vt := &verifyToken[T]{
		candidate:     candidate,
		anchor:        anchor,
		triggers:      append([]triggerRef(nil), e.pendingTriggers...),
		triggerStarts: append([]int(nil), e.pendingTriggerStarts...),
	}
	return vt
}

func resolvedFromSpec[T comparable](spec MultiElementSpec[T]) resolvedToken[T] {
	return resolvedToken[T]{id: spec.ID, elements: spec.Elements}
}

func resolvedSingle[T comparable](spec *SingleElementSpec[T]) resolvedToken[T] {
	return resolvedToken[T]{id: spec.ID, elements: []T{spec.Element}}
}

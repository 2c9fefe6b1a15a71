package ace

import (
	"math"

	"github.com/grindlemire/go-ace/internal/debug"
)

// matchedPair returns (self, target) for the given direction.
func (gt *GeometryTransition) matchedPair(isNodeIn bool) (self, target *FrameNode) {
	if isNodeIn {
		return gt.InNode(), gt.OutNode()
	}
	return gt.OutNode(), gt.InNode()
}

// parentPosition returns the window offset of self's parent content origin.
// A leaving node uses the offset recorded when it started leaving.
func (gt *GeometryTransition) parentPosition(self *FrameNode) OffsetF {
	if self.isRemoving {
		return gt.outNodeParentPos
	}
	return self.renderContext.PaintRectGlobalOffsetWithTranslate(true)
}

// SyncGeometry animates self toward the geometry of its partner. The entering
// node starts at the leaving node's rect and moves to its own frame; the
// leaving node moves to the entering node's rect. Does nothing unless the
// pair is valid.
func (gt *GeometryTransition) SyncGeometry(isNodeIn bool) {
	self, target := gt.matchedPair(isNodeIn)
	if self == nil || target == nil || self == target {
		return
	}
	ctx := self.context
	if ctx == nil {
		ctx = target.context
	}
	if ctx == nil {
		return
	}
	rc, targetRC := self.renderContext, target.renderContext

	parentPos := gt.parentPosition(self)
	targetRect := targetRC.TransformRectRelativeToWindow()
	if target.isRemoving || !target.onMainTree {
		targetRect = NewRectF(gt.outNodePos, gt.outNodeSize)
	}
	activeFrameRect := NewRectF(targetRect.Offset().Sub(parentPos), targetRect.Size())
	if isNodeIn && gt.inNodeActiveFrameSize.IsPositive() {
		activeFrameRect = activeFrameRect.SetSize(gt.inNodeActiveFrameSize)
	}
	targetRadius, _ := targetRC.BorderRadius()
	selfRadius, _ := rc.BorderRadius()

	if isNodeIn {
		rc.SetFrameWithoutAnimation(activeFrameRect)
		rc.SetBorderRadius(targetRadius)
		if gt.doRegisterSharedTransition && target.isRemoving {
			rc.RegisterSharedTransition(targetRC)
		}
	} else {
		abs := targetRect
		gt.outNodeTargetAbsRect = &abs
	}
	rc.SetSandBox(&parentPos)

	debug.Debug("geometry transition sync", "id", gt.id, "in", isNodeIn, "self", self.id, "target", target.id,
		"parentPos", parentPos, "activeFrame", activeFrameRect)

	ctx.Animate(gt.animationOption, func() {
		if isNodeIn {
			rc.SetBorderRadius(selfRadius)
			rc.SyncGeometryProperties(self.geometryNode.Frame())
			return
		}
		rc.SetBorderRadius(targetRadius)
		rc.SyncGeometryProperties(activeFrameRect)
	}, func() {
		ctx.TaskExecutor().PostTask(func(*Pipeline) {
			gt.finishSync(self, targetRC, isNodeIn)
		}, TaskTypeUI)
	})
}

// finishSync clears what SyncGeometry set up once its animation ends.
func (gt *GeometryTransition) finishSync(self *FrameNode, targetRC RenderContext, isNodeIn bool) {
	self.renderContext.SetSandBox(nil)
	if isNodeIn {
		self.renderContext.UnregisterSharedTransition(targetRC)
		return
	}
	gt.outNodeTargetAbsRect = nil
	if self.isDisappearing && !self.renderContext.HasTransitionOutAnimation() {
		self.OnTransitionOutFinish()
	}
}

// OnReSync retargets a running exit when the in-node moved. A non-nil trigger
// only stores option for the next call. A moved in-node retargets the
// out-node's animation; a resized one lays the out-node out again.
func (gt *GeometryTransition) OnReSync(trigger *FrameNode, option AnimationOption) {
	if trigger != nil {
		opt := option
		gt.resyncOption = &opt
		return
	}
	if !gt.IsInAndOutValid() {
		gt.settleUnmatchedOut()
		return
	}
	if gt.outNodeTargetAbsRect == nil || gt.outNodeTargetAbsRect.IsEmpty() {
		return
	}
	in, out := gt.InNode(), gt.OutNode()
	if !in.onMainTree {
		return
	}
	ctx := in.context
	if ctx == nil {
		return
	}
	if gt.resyncOption != nil {
		option = *gt.resyncOption
		gt.resyncOption = nil
	}

	cfg := ctx.Config().Resync
	now := in.renderContext.TransformRectRelativeToWindow()
	old := *gt.outNodeTargetAbsRect
	// Drift up to and including a threshold counts as unchanged.
	sizeChanged := math.Abs(now.Width-old.Width) > cfg.SizeThreshold ||
		math.Abs(now.Height-old.Height) > cfg.SizeThreshold
	posChanged := math.Abs(now.X-old.X) > cfg.PositionThreshold ||
		math.Abs(now.Y-old.Y) > cfg.PositionThreshold

	switch {
	case sizeChanged:
		gt.outNodeTargetAbsRect = &now
		gt.hasOutAnim = true
		gt.markLayoutDirty(out, -1, PropertyUpdateMeasureSelf)
		debug.Debug("geometry transition resync relayout", "id", gt.id, "rect", now)
	case posChanged:
		parentPos := gt.parentPosition(out)
		frame := NewRectF(now.Offset().Sub(parentPos), now.Size())
		outRC := out.renderContext
		ctx.Animate(option, func() {
			outRC.SyncGeometryProperties(frame)
		}, nil)
		gt.outNodeTargetAbsRect = &now
		debug.Debug("geometry transition resync retarget", "id", gt.id, "rect", now)
	}
}

// settleUnmatchedOut releases a leaving node whose partner never arrived.
func (gt *GeometryTransition) settleUnmatchedOut() {
	out := gt.OutNode()
	if out == nil || gt.InNode() != nil || !gt.hasOutAnim {
		return
	}
	gt.hasOutAnim = false
	out.layoutPriority = 0
	gt.dropOutNode(out)
}

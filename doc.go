// Package ace is the retained node tree of a declarative UI runtime.
//
// The tree is made of [UINode] values. Nodes that own a render context and
// geometry are [FrameNode] values; every other node is a structural wrapper.
// Children are owned by their parent, and the parent is only reachable through
// a weak back reference.
//
// Removing a child while its exit transition is still running moves it to the
// parent's disappearing list, which keeps it alive and rendered in its original
// stacking slot until the transition finishes.
//
// A [GeometryTransition] matches two frame nodes that share a transition id,
// one entering and one leaving, and makes them look like one element moving
// continuously. It runs across four phases driven by the [Pipeline]: Build
// during tree mutation, WillLayout and DidLayout around each layout pass, and
// SyncGeometry as an after-layout task.
//
// All tree and transition methods run on the pipeline's UI goroutine. Other
// goroutines hand work to it through [TaskExecutor.PostTask].
package ace

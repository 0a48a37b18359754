// Package stagehand is the scene transform and bounds engine behind a
// timeline-driven video composition editor.
//
// Stagehand answers two questions about a declarative scene description:
// "what is selectable and where" for a given frame, and "what should the new
// transform be" for a given drag gesture. It never rasterizes the scene (an
// external renderer consumes the same description) and it never owns the
// scene data beyond the one transform property a drag session rewrites.
//
// # Scene model
//
// A composition is a list of [Track] values, each an ordered list of [Clip]
// values; track order defines z-order. Every clip carries a flat,
// string-encoded element list (one element per line) in the grammar
//
//	Tag;id:root;parentId:null;width:100%;height:100%;transform:translate(0px, 0px) scale(1, 1) rotate(0deg)
//
// [NewScene] decodes the element strings once at the boundary and exposes the
// structured [ElementRecord] graph, the per-clip bounding boxes
// ([Scene.ClipBounds]), and the transform rewrite path
// ([Scene.ApplyTransform]).
//
// # Interaction
//
// A [Controller] owns selection and drag sessions for one editor instance.
// Pointer input arrives in display (viewport) coordinates; the controller
// converts through its letterboxed [DisplayMetrics] into composition space,
// hit-tests rotation-aware, and emits [TransformPatch] values on every move:
//
//	ctrl := stagehand.NewController(scene, 1920, 1080)
//	ctrl.SetViewport(960, 540)
//	ctrl.SetFrame(0, 30)
//	ctrl.OnTransform = func(clipID string, p stagehand.TransformPatch) {
//		scene.ApplyTransform(clipID, p)
//	}
//	ctrl.Click(mx, my)
//	ctrl.BeginTranslate(mx, my)
//
// Everything is single-threaded and synchronous: sessions are opened on
// press, fed by moves, and unconditionally closed on release.
//
// See examples/editor for a runnable ebiten editor shell.
package stagehand

// Package scripts holds the JavaScript snippets executed through the driver.
// Snippets use WebDriver argument semantics: arguments[0] is the first
// value passed to ExecuteScript.
package scripts

const (
	// JQueryActive returns the number of in-flight jQuery requests. It throws
	// on pages that do not load jQuery.
	JQueryActive = "return jQuery.active"
	ReadyState   = "return document.readyState"

	Click          = "arguments[0].click();"
	ScrollIntoView = "arguments[0].scrollIntoView(true);"
	ScrollToBottom = "window.scrollBy(0, document.body.scrollHeight);"
	NavigateTo     = "window.location = arguments[0];"

	// SetAttribute sets attribute arguments[1] of arguments[0] to arguments[2]
	SetAttribute    = "arguments[0].setAttribute(arguments[1], arguments[2]);"
	RemoveAttribute = "arguments[0].removeAttribute(arguments[1]);"

	InnerText         = "return document.documentElement.innerText;"
	ValidationMessage = "return arguments[0].validationMessage;"
	ImageLoaded       = "return arguments[0].complete && typeof arguments[0].naturalWidth != 'undefined' && arguments[0].naturalWidth > 0;"

	// ShadowQuery returns the first node matching CSS selector arguments[1]
	// inside the shadow root hosted by arguments[0]
	ShadowQuery = "return arguments[0].shadowRoot ? arguments[0].shadowRoot.querySelector(arguments[1]) : null;"

	// DragAndDrop simulates an HTML5 drag of arguments[0] onto arguments[1]
	DragAndDrop = `var source = arguments[0], target = arguments[1];
var transfer = new DataTransfer();
function fire(node, type) {
  var event = new DragEvent(type, {bubbles: true, cancelable: true, dataTransfer: transfer});
  node.dispatchEvent(event);
}
fire(source, 'dragstart');
fire(target, 'dragenter');
fire(target, 'dragover');
fire(target, 'drop');
fire(source, 'dragend');`
)

// HighlightStyle is applied by the highlight helper before the original style is restored
const HighlightStyle = "border: 2px solid red; border-style: dashed;"

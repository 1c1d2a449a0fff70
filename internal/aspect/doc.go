/*
Package aspect defines aspects, the behaviors attached to elements through
attributes, and the lifecycle of one aspect on one element.

A Descriptor names the aspect and carries its Behavior. An Instance binds a
descriptor to an element: Apply assembles the options from the element's
attributes and runs the effect, Undo calls the UndoFunc the effect returned,
and Reload does both. Applying an aspect twice to the same element is a
no-op; undoing one that is not applied is too.
*/
package aspect

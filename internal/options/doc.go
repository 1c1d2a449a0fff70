/*
Package options turns the attributes of an element into the option tree of
an aspect.

Every attribute in the aspect's namespace contributes one value at the path
its name addresses:

	<div mx:tooltip="'Save'" mx:tooltip:show:delay-ms="200">

gives, for the aspect `tooltip` with the default option `value`,

	{ value: "Save", show: { delayMs: 200 } }

Values are parsed with the grammar package against the aspect's resources,
and merged right-biased: maps merge key by key, everything else is replaced.
*/
package options

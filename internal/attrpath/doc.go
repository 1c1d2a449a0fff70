/*
Package attrpath maps attribute names onto option paths.

An aspect named `tooltip` under the prefix `mx` owns the base attribute
`mx:tooltip` and every attribute below it. The part after the base is a
separator-delimited path into the aspect's options, with dash-case segments
converted to camelCase:

	mx:tooltip                  -> []
	mx:tooltip:text             -> [text]
	mx:tooltip:show:delay-ms    -> [show delayMs]

The package also parses the dotted/bracketed paths (`attr.list[2]`) used to
configure the base path of relative resource references.
*/
package attrpath

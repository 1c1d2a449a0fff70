// Package markup provides the element tree that aspects are mounted on.
// HTML documents are parsed with goquery on top of golang.org/x/net/html;
// trees can also be built in memory with NewElement.
package markup

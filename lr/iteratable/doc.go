/*
Package iteratable implements iteratable container data structures.

Set is a special-purpose set type, suitable mainly for implementing
algorithms around item-set construction, closures, and state discovery:
these kinds of algorithms are often more straightforward to describe as
set constructions and operations than as explicit loops over slices.

Unusually, all set operations are destructive!
*/
package iteratable

// Package template renders device configuration files from a template with
// one repeating per-line section.
//
// A template is plain text. Two marker lines delimit the section that is
// emitted once per line assigned to the device:
//
//	<gs_provision version="1">
//	  <config version="1">
//	<!-- for LINE in LINES -->
//	    <P35>$LINE.USER_ID</P35>
//	    <P34>$LINE.PASSWORD</P34>
//	<!-- endfor -->
//	  </config>
//	</gs_provision>
//
// Inside the section, numbered P-value tags are shifted by the line's
// position so each line lands on its own FXS port slot: <P35> for the
// first line becomes <P36> for the second. Tokens of the form
// $LINE.<FIELD> are replaced with the line's column values. Tokens naming
// a field the line does not have are left as written.
//
// Parse a template once with Parse or Load and reuse the Index for every
// device.
package template
